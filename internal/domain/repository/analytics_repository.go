package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// InventoryTotals agregados del inventario de una ubicación (o de toda la red).
type InventoryTotals struct {
	Quantity       int64
	Value          decimal.Decimal // SUM(quantity * unit_price)
	UniqueProducts int
}

// AnalyticsRepository consultas de solo lectura para el tablero.
// Un locationID, scope o userID vacío significa sin filtro.
type AnalyticsRepository interface {
	CountActiveProducts(ctx context.Context) (int, error)
	InventoryTotals(ctx context.Context, locationID string) (InventoryTotals, error)
	// CountMovements cuenta movimientos en status donde scope es origen o destino.
	CountMovements(ctx context.Context, status, scope string) (int, error)
	CountActivityLogs(ctx context.Context, userID string) (int, error)
}
