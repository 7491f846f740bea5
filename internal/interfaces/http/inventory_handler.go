package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-distribucion/internal/application/dto"
	"github.com/jhoicas/Inventario-distribucion/internal/application/inventory"
)

// InventoryHandler consultas y cargas del libro de inventario (protegido).
type InventoryHandler struct {
	uc   *inventory.LedgerUseCase
	errs errorMapper
	val  *requestValidator
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase, errs errorMapper, val *requestValidator) *InventoryHandler {
	return &InventoryHandler{uc: uc, errs: errs, val: val}
}

// List godoc
// @Summary      Inventario por ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "Solo admin puede consultar otra ubicación"
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Success      200  {array}   dto.InventoryRecordResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var q dto.InventoryQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), q)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// AddInitialStock godoc
// @Summary      Cargar stock inicial en una bodega
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitialStockRequest  true  "location_id, product_id, quantity, unit_price"
// @Success      201   {object}  dto.InventoryRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/initial-stock [post]
func (h *InventoryHandler) AddInitialStock(c *fiber.Ctx) error {
	var in dto.InitialStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.val.Struct(in); err != nil {
		return h.errs.write(c, err)
	}
	out, err := h.uc.AddInitialStock(c.UserContext(), GetActor(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Adjust godoc
// @Summary      Ajuste manual de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "location_id, product_id, delta, unit_price, reason"
// @Success      200   {object}  dto.InventoryRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.val.Struct(in); err != nil {
		return h.errs.write(c, err)
	}
	out, err := h.uc.AdjustStock(c.UserContext(), GetActor(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
