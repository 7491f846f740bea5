package dto

// HierarchyEdge tipos destino permitidos para un tipo origen.
type HierarchyEdge struct {
	FromType     string   `json:"fromType"`
	Label        string   `json:"label"`
	AllowedTypes []string `json:"allowedTypes"`
}

// HierarchyResponse tabla completa de la jerarquía.
type HierarchyResponse struct {
	Edges []HierarchyEdge `json:"edges"`
}
