package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-distribucion/internal/application/activity"
	"github.com/jhoicas/Inventario-distribucion/internal/application/dto"
)

// ActivityHandler bitácora general (protegido).
type ActivityHandler struct {
	uc   *activity.TrailUseCase
	errs errorMapper
	val  *requestValidator
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *activity.TrailUseCase, errs errorMapper, val *requestValidator) *ActivityHandler {
	return &ActivityHandler{uc: uc, errs: errs, val: val}
}

// Recent godoc
// @Summary      Últimas entradas de la bitácora
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo 500"  default(100)
// @Success      200  {array}  dto.ActivityLogResponse
// @Router       /api/activity-logs [get]
func (h *ActivityHandler) Recent(c *fiber.Ctx) error {
	out, err := h.uc.Recent(c.UserContext(), GetActor(c), c.QueryInt("limit", activity.DefaultLimit))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Record godoc
// @Summary      Registrar una acción
// @Tags         activity
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordActivityRequest  true  "action, description, entity_type, entity_id"
// @Success      201   {object}  dto.ActivityLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/activity-logs [post]
func (h *ActivityHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.val.Struct(in); err != nil {
		return h.errs.write(c, err)
	}
	out, err := h.uc.Record(c.UserContext(), GetActor(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
