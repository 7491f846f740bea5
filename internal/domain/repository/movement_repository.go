package repository

import (
	"context"

	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
)

// MovementFilter filtros de listado. Scope, si no está vacío, limita a movimientos
// donde esa ubicación es origen o destino.
type MovementFilter struct {
	Status         string
	FromLocationID string
	ToLocationID   string
	Scope          string
	Limit          int
	Offset         int
}

// MovementRepository define el puerto de persistencia para movimientos, ítems y bitácora.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	CreateItems(ctx context.Context, items []entity.MovementItem) error
	// GetByID devuelve el movimiento con nombres de ubicaciones y creador, sin ítems ni actividades.
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// GetForUpdate bloquea la fila del movimiento dentro de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Movement, error)
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	ListItems(ctx context.Context, movementID string) ([]entity.MovementItem, error)
	AddActivity(ctx context.Context, activity *entity.MovementActivity) error
	ListActivities(ctx context.Context, movementID string) ([]entity.MovementActivity, error)
	// ListItemsFor y ListActivitiesFor cargan en una consulta los de varios movimientos,
	// agrupados por movement_id y en el mismo orden que ListItems / ListActivities.
	ListItemsFor(ctx context.Context, movementIDs []string) (map[string][]entity.MovementItem, error)
	ListActivitiesFor(ctx context.Context, movementIDs []string) (map[string][]entity.MovementActivity, error)
}
