package repository

import (
	"context"

	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
)

// InventoryFilter filtros de consulta de inventario. LocationID vacío = todas.
type InventoryFilter struct {
	LocationID string
	ProductID  string
}

// InventoryRepository puerto para los registros (ubicación, producto).
// Get y GetForUpdate devuelven un registro con ID vacío y cantidad 0 cuando no existe.
type InventoryRepository interface {
	Get(ctx context.Context, locationID, productID string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene efecto dentro de una tx.
	// Puede reservar la fila en cero para bloquearla aunque no exista.
	GetForUpdate(ctx context.Context, locationID, productID string) (*entity.InventoryRecord, error)
	// Upsert inserta o actualiza por (location_id, product_id) y completa ID si era nuevo.
	Upsert(ctx context.Context, record *entity.InventoryRecord) error
	List(ctx context.Context, filter InventoryFilter) ([]*entity.InventoryRecord, error)
}
