package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementItemRequest línea de un movimiento nuevo. UnitPrice opcional (0 si no viene).
type MovementItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	FromLocationID string                `json:"from_location_id" validate:"required"`
	ToLocationID   string                `json:"to_location_id" validate:"required"`
	Items          []MovementItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes          string                `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateMovementRequest body para PUT /api/movements/:id.
// Con Status se intenta la transición; solo con Action se anota la bitácora.
type UpdateMovementRequest struct {
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=pending approved received cancelled"`
	Action      string `json:"action,omitempty" validate:"omitempty,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// MovementQuery filtros de GET /api/movements.
type MovementQuery struct {
	Status         string `query:"status" validate:"omitempty,oneof=pending approved received cancelled"`
	FromLocationID string `query:"from_location_id"`
	ToLocationID   string `query:"to_location_id"`
	PageRequest
}

// MovementItemResponse línea con nombre de producto y subtotal.
type MovementItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// MovementActivityResponse entrada de la bitácora del movimiento.
type MovementActivityResponse struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	Description string    `json:"description,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	UserName    string    `json:"user_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementResponse movimiento completo. Items y Activities se omiten en listados.
type MovementResponse struct {
	ID               string                     `json:"id"`
	FromLocationID   string                     `json:"from_location_id"`
	FromLocationName string                     `json:"from_location_name,omitempty"`
	ToLocationID     string                     `json:"to_location_id"`
	ToLocationName   string                     `json:"to_location_name,omitempty"`
	Status           string                     `json:"status"`
	Notes            string                     `json:"notes,omitempty"`
	CreatedBy        string                     `json:"created_by"`
	CreatedByName    string                     `json:"created_by_name,omitempty"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at"`
	Items            []MovementItemResponse     `json:"items,omitempty"`
	Activities       []MovementActivityResponse `json:"activities,omitempty"`
	Total            *decimal.Decimal           `json:"total,omitempty"`
}
