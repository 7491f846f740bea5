package ports

import (
	"context"

	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Locations   repository.LocationRepository
	Products    repository.ProductRepository
	Inventory   repository.InventoryRepository
	Movements   repository.MovementRepository
	ActivityLog repository.ActivityLogRepository
}

// TxRunner ejecuta fn dentro de una transacción. Si fn devuelve error se hace rollback
// y ningún cambio queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
