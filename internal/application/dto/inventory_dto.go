package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InitialStockRequest body para POST /api/inventory/initial-stock.
type InitialStockRequest struct {
	LocationID string           `json:"location_id" validate:"required"`
	ProductID  string           `json:"product_id" validate:"required"`
	Quantity   int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
}

// AdjustStockRequest body para POST /api/inventory/adjust. Delta negativo descuenta.
type AdjustStockRequest struct {
	LocationID string           `json:"location_id" validate:"required"`
	ProductID  string           `json:"product_id" validate:"required"`
	Delta      int              `json:"delta" validate:"required,ne=0"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
	Reason     string           `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// InventoryQuery filtros de GET /api/inventory.
type InventoryQuery struct {
	LocationID string `query:"location_id"`
	ProductID  string `query:"product_id"`
}

// InventoryRecordResponse fila de inventario por (ubicación, producto).
type InventoryRecordResponse struct {
	ID           string          `json:"id"`
	LocationID   string          `json:"location_id"`
	LocationName string          `json:"location_name,omitempty"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	ProductSKU   string          `json:"product_sku,omitempty"`
	Category     string          `json:"category,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
