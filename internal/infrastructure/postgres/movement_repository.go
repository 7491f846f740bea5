package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-distribucion/internal/domain"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementSelect = `
	SELECT m.id, m.from_location_id, m.to_location_id, m.status, COALESCE(m.notes, ''),
	       COALESCE(m.created_by::text, ''), m.created_at, m.updated_at,
	       fl.name, tl.name, COALESCE(u.name, '')
	FROM stock_movements m
	JOIN locations fl ON fl.id = m.from_location_id
	JOIN locations tl ON tl.id = m.to_location_id
	LEFT JOIN users u ON u.id = m.created_by`

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste la cabecera del movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (id, from_location_id, to_location_id, status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, '')::uuid, now(), now())
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query, m.ID, m.FromLocationID, m.ToLocationID, m.Status, m.Notes, m.CreatedBy).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// CreateItems inserta las líneas en un solo batch conservando el orden recibido.
func (r *MovementRepo) CreateItems(ctx context.Context, items []entity.MovementItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i, it := range items {
		batch.Queue(`
			INSERT INTO stock_movement_items (id, movement_id, line_no, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.MovementID, i+1, it.ProductID, it.Quantity, it.UnitPrice)
	}
	br := r.q.SendBatch(ctx, batch)
	for range items {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert movement item: %w", err)
		}
	}
	return br.Close()
}

// GetByID obtiene el movimiento con nombres de ubicaciones y creador.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	return r.getOne(ctx, movementSelect+` WHERE m.id = $1`, id)
}

// GetForUpdate bloquea la fila del movimiento (solo la tabla stock_movements).
func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	return r.getOne(ctx, movementSelect+` WHERE m.id = $1 FOR UPDATE OF m`, id)
}

func (r *MovementRepo) getOne(ctx context.Context, query, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// UpdateStatus cambia el estado y updated_at.
func (r *MovementRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE stock_movements SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update movement status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List movimientos filtrados, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != "" {
		add("m.status = $%d", f.Status)
	}
	if f.FromLocationID != "" {
		add("m.from_location_id::text = $%d", f.FromLocationID)
	}
	if f.ToLocationID != "" {
		add("m.to_location_id::text = $%d", f.ToLocationID)
	}
	if f.Scope != "" {
		args = append(args, f.Scope)
		conds = append(conds, fmt.Sprintf("(m.from_location_id::text = $%d OR m.to_location_id::text = $%d)", len(args), len(args)))
	}
	query := movementSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY m.created_at DESC, m.id"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListItems líneas con nombre de producto.
func (r *MovementRepo) ListItems(ctx context.Context, movementID string) ([]entity.MovementItem, error) {
	byMovement, err := r.ListItemsFor(ctx, []string{movementID})
	if err != nil {
		return nil, err
	}
	if items := byMovement[movementID]; items != nil {
		return items, nil
	}
	return []entity.MovementItem{}, nil
}

// ListItemsFor ítems con nombre de producto de varios movimientos en una sola consulta.
func (r *MovementRepo) ListItemsFor(ctx context.Context, movementIDs []string) (map[string][]entity.MovementItem, error) {
	out := make(map[string][]entity.MovementItem, len(movementIDs))
	if len(movementIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.movement_id, i.product_id, i.quantity, i.unit_price, p.name
		FROM stock_movement_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.movement_id = ANY($1::text[]::uuid[])
		ORDER BY i.movement_id, i.line_no`, movementIDs)
	if err != nil {
		return nil, fmt.Errorf("list movement items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.MovementItem
		if err := rows.Scan(&it.ID, &it.MovementID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.ProductName); err != nil {
			return nil, fmt.Errorf("scan movement item: %w", err)
		}
		out[it.MovementID] = append(out[it.MovementID], it)
	}
	return out, rows.Err()
}

// AddActivity agrega una entrada a la bitácora del movimiento.
func (r *MovementRepo) AddActivity(ctx context.Context, a *entity.MovementActivity) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_movement_activities (id, movement_id, action, description, user_id, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, '')::uuid, clock_timestamp())
		RETURNING created_at`,
		a.ID, a.MovementID, a.Action, a.Description, a.UserID,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movement activity: %w", err)
	}
	return nil
}

// ListActivities bitácora en orden cronológico con nombre de usuario.
func (r *MovementRepo) ListActivities(ctx context.Context, movementID string) ([]entity.MovementActivity, error) {
	byMovement, err := r.ListActivitiesFor(ctx, []string{movementID})
	if err != nil {
		return nil, err
	}
	if acts := byMovement[movementID]; acts != nil {
		return acts, nil
	}
	return []entity.MovementActivity{}, nil
}

// ListActivitiesFor bitácoras de varios movimientos en una sola consulta.
func (r *MovementRepo) ListActivitiesFor(ctx context.Context, movementIDs []string) (map[string][]entity.MovementActivity, error) {
	out := make(map[string][]entity.MovementActivity, len(movementIDs))
	if len(movementIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT a.id, a.movement_id, a.action, COALESCE(a.description, ''), COALESCE(a.user_id::text, ''),
		       a.created_at, COALESCE(u.name, '')
		FROM stock_movement_activities a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.movement_id = ANY($1::text[]::uuid[])
		ORDER BY a.movement_id, a.created_at, a.id`, movementIDs)
	if err != nil {
		return nil, fmt.Errorf("list movement activities: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a entity.MovementActivity
		if err := rows.Scan(&a.ID, &a.MovementID, &a.Action, &a.Description, &a.UserID, &a.CreatedAt, &a.UserName); err != nil {
			return nil, fmt.Errorf("scan movement activity: %w", err)
		}
		out[a.MovementID] = append(out[a.MovementID], a)
	}
	return out, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	if err := row.Scan(&m.ID, &m.FromLocationID, &m.ToLocationID, &m.Status, &m.Notes, &m.CreatedBy,
		&m.CreatedAt, &m.UpdatedAt, &m.FromLocationName, &m.ToLocationName, &m.CreatedByName); err != nil {
		return nil, err
	}
	return &m, nil
}
