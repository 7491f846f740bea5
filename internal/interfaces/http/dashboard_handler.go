package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-distribucion/internal/application/analytics"
)

// DashboardHandler indicadores del tablero (protegido).
type DashboardHandler struct {
	uc   *analytics.DashboardUseCase
	errs errorMapper
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, errs errorMapper) *DashboardHandler {
	return &DashboardHandler{uc: uc, errs: errs}
}

// Stats godoc
// @Summary      Indicadores del tablero
// @Description  Productos activos, unidades y valor del inventario, movimientos pendientes y entradas de bitácora visibles para el usuario.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.UserContext(), GetActor(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
