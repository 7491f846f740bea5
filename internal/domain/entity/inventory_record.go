package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord cantidad y precio de un producto en una ubicación.
// Quantity nunca es negativa; 0 es un estado válido (el registro no se borra).
type InventoryRecord struct {
	ID         string
	LocationID string
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Campos de consulta (no siempre poblados).
	ProductName  string
	ProductSKU   string
	Category     string
	LocationName string
}
