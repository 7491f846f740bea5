package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-distribucion/internal/application/ports"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
	"github.com/jhoicas/Inventario-distribucion/internal/infrastructure/memory"
)

func TestTxRunner_RollbackRestauraEstado(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	runner := memory.NewTxRunner(s)

	require.NoError(t, s.Inventory().Upsert(ctx, &entity.InventoryRecord{ID: "r1", LocationID: "w", ProductID: "p", Quantity: 10}))

	boom := errors.New("boom")
	err := runner.Run(ctx, func(repos ports.TxRepos) error {
		rec, err := repos.Inventory.GetForUpdate(ctx, "w", "p")
		require.NoError(t, err)
		rec.Quantity = 3
		require.NoError(t, repos.Inventory.Upsert(ctx, rec))
		require.NoError(t, repos.ActivityLog.Record(ctx, &entity.ActivityLog{ID: "l1", Action: "x"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	rec, err := s.Inventory().Get(ctx, "w", "p")
	require.NoError(t, err)
	assert.Equal(t, 10, rec.Quantity)
	logs, err := s.ActivityLog().ListRecent(ctx, "", 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestInventoryRepo_GetAusenteDevuelveCero(t *testing.T) {
	s := memory.NewStore()
	rec, err := s.Inventory().Get(context.Background(), "w", "p")
	require.NoError(t, err)
	assert.Empty(t, rec.ID)
	assert.Equal(t, 0, rec.Quantity)
}

func TestInventoryRepo_ListConNombres(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Locations().Create(ctx, &entity.Location{ID: "w", Name: "Bodega", Type: entity.LocationTypeWarehouse}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p", Name: "Arroz", SKU: "ARR-1", UnitPrice: decimal.NewFromInt(5)}))
	require.NoError(t, s.Inventory().Upsert(ctx, &entity.InventoryRecord{ID: "r1", LocationID: "w", ProductID: "p", Quantity: 4}))

	out, err := s.Inventory().List(ctx, repository.InventoryFilter{LocationID: "w"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Arroz", out[0].ProductName)
	assert.Equal(t, "Bodega", out[0].LocationName)

	out, err = s.Inventory().List(ctx, repository.InventoryFilter{LocationID: "otra"})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMovementRepo_ListFiltrosYScope(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	repo := s.Movements()
	require.NoError(t, repo.Create(ctx, &entity.Movement{ID: "m1", FromLocationID: "w", ToLocationID: "d", Status: entity.MovementStatusPending}))
	require.NoError(t, repo.Create(ctx, &entity.Movement{ID: "m2", FromLocationID: "d", ToLocationID: "a", Status: entity.MovementStatusReceived}))

	all, err := repo.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "m2", all[0].ID)

	scoped, err := repo.List(ctx, repository.MovementFilter{Scope: "w"})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "m1", scoped[0].ID)

	byStatus, err := repo.List(ctx, repository.MovementFilter{Status: entity.MovementStatusReceived, Scope: "d"})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "m2", byStatus[0].ID)
}

func TestProductRepo_SKUDuplicado(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", Name: "A", SKU: "X"}))
	assert.Error(t, s.Products().Create(ctx, &entity.Product{ID: "p2", Name: "B", SKU: "x"}))
}
