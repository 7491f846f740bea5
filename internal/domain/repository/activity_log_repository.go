package repository

import (
	"context"

	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
)

// ActivityLogRepository puerto append-only de la bitácora general. No hay Update ni Delete.
type ActivityLogRepository interface {
	Record(ctx context.Context, entry *entity.ActivityLog) error
	// ListRecent devuelve las últimas limit entradas; userID vacío = todas.
	ListRecent(ctx context.Context, userID string, limit int) ([]*entity.ActivityLog, error)
}
