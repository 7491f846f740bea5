package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-distribucion/internal/domain"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene el registro de un producto en una ubicación.
func (r *InventoryRepo) Get(ctx context.Context, locationID, productID string) (*entity.InventoryRecord, error) {
	return r.get(ctx, locationID, productID, false)
}

// GetForUpdate obtiene el registro y bloquea la fila para update (SELECT FOR UPDATE).
// Si la fila no existe la reserva en cero (ON CONFLICT DO NOTHING): dos tx que acreditan
// la misma fila nueva quedan serializadas. Si la reserva es de esta tx se devuelve como
// inexistente (ID vacío) y el rollback la descarta.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, locationID, productID string) (*entity.InventoryRecord, error) {
	rec, err := r.get(ctx, locationID, productID, true)
	if err != nil || rec.ID != "" {
		return rec, err
	}
	var reserved string
	err = r.q.QueryRow(ctx, `
		INSERT INTO inventory (id, location_id, product_id, quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, 0, 0, now(), now())
		ON CONFLICT (location_id, product_id) DO NOTHING
		RETURNING id`,
		uuid.New().String(), locationID, productID).Scan(&reserved)
	switch {
	case err == nil:
		return &entity.InventoryRecord{LocationID: locationID, ProductID: productID}, nil
	case errors.Is(err, pgx.ErrNoRows):
		// otra tx creó la fila; se espera su commit
		return r.get(ctx, locationID, productID, true)
	default:
		return nil, fmt.Errorf("reserve inventory row: %w", err)
	}
}

func (r *InventoryRepo) get(ctx context.Context, locationID, productID string, lock bool) (*entity.InventoryRecord, error) {
	query := `
		SELECT id, location_id, product_id, quantity, unit_price, created_at, updated_at
		FROM inventory WHERE location_id = $1 AND product_id = $2`
	if lock {
		query += ` FOR UPDATE`
	}
	var rec entity.InventoryRecord
	err := r.q.QueryRow(ctx, query, locationID, productID).Scan(
		&rec.ID, &rec.LocationID, &rec.ProductID, &rec.Quantity, &rec.UnitPrice, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryRecord{LocationID: locationID, ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &rec, nil
}

// Upsert inserta o actualiza cantidad y precio por (location_id, product_id).
func (r *InventoryRepo) Upsert(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory (id, location_id, product_id, quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (location_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, unit_price = EXCLUDED.unit_price, updated_at = now()
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, rec.ID, rec.LocationID, rec.ProductID, rec.Quantity, rec.UnitPrice).
		Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// List registros con nombres de producto y ubicación.
func (r *InventoryRepo) List(ctx context.Context, f repository.InventoryFilter) ([]*entity.InventoryRecord, error) {
	var (
		conds []string
		args  []any
	)
	if f.LocationID != "" {
		args = append(args, f.LocationID)
		conds = append(conds, fmt.Sprintf("i.location_id = $%d", len(args)))
	}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		conds = append(conds, fmt.Sprintf("i.product_id = $%d", len(args)))
	}
	query := `
		SELECT i.id, i.location_id, i.product_id, i.quantity, i.unit_price, i.created_at, i.updated_at,
		       p.name, COALESCE(p.sku, ''), COALESCE(p.category, ''), l.name
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		JOIN locations l ON l.id = i.location_id`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY l.name, p.name"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.InventoryRecord, 0)
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.ID, &rec.LocationID, &rec.ProductID, &rec.Quantity, &rec.UnitPrice,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.ProductName, &rec.ProductSKU, &rec.Category, &rec.LocationName); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
