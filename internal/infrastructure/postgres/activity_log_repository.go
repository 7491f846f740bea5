package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo bitácora general sobre PostgreSQL. Solo INSERT y SELECT.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Record inserta una entrada.
func (r *ActivityLogRepo) Record(ctx context.Context, e *entity.ActivityLog) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO activity_logs (id, user_id, action, description, entity_type, entity_id, created_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), clock_timestamp())
		RETURNING created_at`,
		e.ID, e.UserID, e.Action, e.Description, e.EntityType, e.EntityID,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// ListRecent últimas entradas con datos del usuario; userID vacío = todas.
func (r *ActivityLogRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*entity.ActivityLog, error) {
	rows, err := r.q.Query(ctx, `
		SELECT a.id, COALESCE(a.user_id::text, ''), a.action, COALESCE(a.description, ''),
		       COALESCE(a.entity_type, ''), COALESCE(a.entity_id, ''), a.created_at,
		       COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM activity_logs a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE ($1 = '' OR a.user_id::text = $1)
		ORDER BY a.created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.ActivityLog, 0)
	for rows.Next() {
		var e entity.ActivityLog
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Description, &e.EntityType, &e.EntityID,
			&e.CreatedAt, &e.UserName, &e.UserEmail); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
