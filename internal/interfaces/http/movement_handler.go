package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-distribucion/internal/application/dto"
	"github.com/jhoicas/Inventario-distribucion/internal/application/movement"
)

// HeaderIdempotencyKey clave opcional para no duplicar la creación de un movimiento.
const HeaderIdempotencyKey = "Idempotency-Key"

// MovementHandler maneja el ciclo de vida de los movimientos de stock (protegido).
type MovementHandler struct {
	uc   *movement.MovementUseCase
	errs errorMapper
	val  *requestValidator
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *movement.MovementUseCase, errs errorMapper, val *requestValidator) *MovementHandler {
	return &MovementHandler{uc: uc, errs: errs, val: val}
}

// Create godoc
// @Summary      Crear movimiento
// @Description  Crea un movimiento pendiente. No mueve inventario hasta que se recibe.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                     false  "Clave de idempotencia"
// @Param        body             body    dto.CreateMovementRequest  true   "origen, destino e ítems"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.val.Struct(in); err != nil {
		return h.errs.write(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in, c.Get(HeaderIdempotencyKey))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Cambiar estado o anotar un movimiento
// @Description  Con status intenta la transición (approved, received, cancelled). Solo con action agrega una entrada a la bitácora.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "status, action, description"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.val.Struct(in); err != nil {
		return h.errs.write(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Description  Un usuario no admin solo ve movimientos donde su ubicación es origen o destino.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        status            query  string  false  "pending, approved, received, cancelled"
// @Param        from_location_id  query  string  false  "Origen"
// @Param        to_location_id    query  string  false  "Destino"
// @Param        limit             query  int     false  "Límite"  default(50)
// @Param        offset            query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	if err := h.val.Struct(q); err != nil {
		return h.errs.write(c, err)
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), q)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// DeliveryNote godoc
// @Summary      Remisión en PDF
// @Tags         movements
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/delivery-note [get]
func (h *MovementHandler) DeliveryNote(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.DeliveryNote(c.UserContext(), GetActor(c), id)
	if err != nil {
		return h.errs.write(c, err)
	}
	name := id
	if len(name) > 8 {
		name = name[:8]
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="remision-%s.pdf"`, name))
	return c.Send(pdf)
}
