package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas para el tablero.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func (r *AnalyticsRepo) CountActiveProducts(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE status = 'active'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active products: %w", err)
	}
	return n, nil
}

// InventoryTotals usa COALESCE para devolver cero cuando no hay registros.
func (r *AnalyticsRepo) InventoryTotals(ctx context.Context, locationID string) (repository.InventoryTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(quantity), 0)              AS total_quantity,
	    COALESCE(SUM(quantity * unit_price), 0) AS total_value,
	    COUNT(DISTINCT product_id)              AS unique_products
	FROM inventory
	WHERE ($1 = '' OR location_id::text = $1)`

	var t repository.InventoryTotals
	err := r.q.QueryRow(ctx, query, locationID).Scan(&t.Quantity, &t.Value, &t.UniqueProducts)
	if err != nil {
		return repository.InventoryTotals{}, fmt.Errorf("inventory totals: %w", err)
	}
	return t, nil
}

func (r *AnalyticsRepo) CountMovements(ctx context.Context, status, scope string) (int, error) {
	const query = `
	SELECT COUNT(*) FROM stock_movements
	WHERE ($1 = '' OR status = $1)
	  AND ($2 = '' OR from_location_id::text = $2 OR to_location_id::text = $2)`

	var n int
	if err := r.q.QueryRow(ctx, query, status, scope).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) CountActivityLogs(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM activity_logs WHERE ($1 = '' OR user_id::text = $1)`, userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count activity logs: %w", err)
	}
	return n, nil
}
