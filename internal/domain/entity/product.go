package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product representa un producto del catálogo.
// UnitPrice es el precio de catálogo; el precio por ubicación vive en InventoryRecord.
type Product struct {
	ID        string
	Name      string
	SKU       string // opcional, único si viene informado
	Category  string
	UnitPrice decimal.Decimal
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el producto puede usarse en movimientos nuevos.
func (p *Product) IsActive() bool {
	return p.Status == "" || p.Status == ProductStatusActive
}

// PriceDecimals decimales que admite un precio; las columnas son NUMERIC(14, 2).
const PriceDecimals = 2

var maxPrice = decimal.New(1, 12)

// PriceProblem devuelve por qué un precio no puede guardarse tal cual, o "" si es válido.
// Un precio con más decimales se rechaza en lugar de redondearse.
func PriceProblem(d decimal.Decimal) string {
	switch {
	case d.IsNegative():
		return "no puede ser negativo"
	case !d.Equal(d.Truncate(PriceDecimals)):
		return "admite como máximo 2 decimales"
	case d.GreaterThanOrEqual(maxPrice):
		return "excede el máximo permitido"
	}
	return ""
}
