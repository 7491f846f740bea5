package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-distribucion/internal/application/dto"
	"github.com/jhoicas/Inventario-distribucion/internal/domain"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/hierarchy"
)

// HierarchyHandler expone la tabla de jerarquía para que el cliente filtre destinos.
// El servidor sigue validando cada movimiento.
type HierarchyHandler struct {
	errs errorMapper
}

// NewHierarchyHandler construye el handler.
func NewHierarchyHandler(errs errorMapper) *HierarchyHandler {
	return &HierarchyHandler{errs: errs}
}

// Get godoc
// @Summary      Tabla de jerarquía de ubicaciones
// @Tags         hierarchy
// @Security     Bearer
// @Produce      json
// @Param        from_type  query  string  false  "Devuelve solo los destinos de este tipo"
// @Success      200  {object}  dto.HierarchyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/hierarchy [get]
func (h *HierarchyHandler) Get(c *fiber.Ctx) error {
	if from := c.Query("from_type"); from != "" {
		if !hierarchy.IsKnownType(from) {
			return h.errs.write(c, domain.NewValidationError("from_type", "tipo de ubicación desconocido"))
		}
		return c.JSON(toEdge(hierarchy.Edge{FromType: from, AllowedTypes: hierarchy.AllowedDestinations(from)}))
	}
	table := hierarchy.Table()
	out := dto.HierarchyResponse{Edges: make([]dto.HierarchyEdge, 0, len(table))}
	for _, e := range table {
		out.Edges = append(out.Edges, toEdge(e))
	}
	return c.JSON(out)
}

func toEdge(e hierarchy.Edge) dto.HierarchyEdge {
	allowed := e.AllowedTypes
	if allowed == nil {
		allowed = []string{}
	}
	return dto.HierarchyEdge{FromType: e.FromType, Label: hierarchy.Label(e.FromType), AllowedTypes: allowed}
}
