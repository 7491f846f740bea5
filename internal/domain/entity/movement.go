package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un movimiento de stock.
const (
	MovementStatusPending   = "pending"
	MovementStatusApproved  = "approved"
	MovementStatusReceived  = "received"
	MovementStatusCancelled = "cancelled"
)

// Movement traslado de uno o más productos entre dos ubicaciones.
// Nunca se borra: queda como registro histórico.
type Movement struct {
	ID             string
	FromLocationID string
	ToLocationID   string
	Status         string
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items      []MovementItem
	Activities []MovementActivity

	// Campos de consulta (joins).
	FromLocationName string
	ToLocationName   string
	CreatedByName    string
}

// MovementItem línea de un movimiento. UnitPrice es una foto del precio al crear el movimiento.
type MovementItem struct {
	ID         string
	MovementID string
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal

	ProductName string
}

// Subtotal cantidad por precio snapshot.
func (i MovementItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// MovementActivity entrada append-only de la bitácora de un movimiento.
// UserID vacío = entrada generada por el sistema.
type MovementActivity struct {
	ID          string
	MovementID  string
	Action      string
	Description string
	UserID      string
	CreatedAt   time.Time

	UserName string
}

// Acciones estándar de la bitácora de movimientos.
const (
	MovementActionCreated   = "Created"
	MovementActionApproved  = "Approved"
	MovementActionReceived  = "Received"
	MovementActionCancelled = "Cancelled"
)
