// Package analytics contiene los indicadores del tablero.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Inventario-distribucion/internal/application/dto"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/authz"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
)

// DashboardUseCase resume catálogo, inventario, movimientos pendientes y bitácora.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetStats lanza las cuatro consultas en paralelo.
// Un usuario no admin ve el inventario y los pendientes de su ubicación y solo sus
// entradas de bitácora; sin ubicación asignada los agregados de inventario quedan en cero.
func (uc *DashboardUseCase) GetStats(ctx context.Context, actor authz.Actor) (*dto.DashboardResponse, error) {
	scoped := !actor.IsAdmin()
	scope, logsUser := "", ""
	if scoped {
		scope, logsUser = actor.LocationID, actor.UserID
	}
	noLocation := scoped && !actor.HasLocation()

	var (
		products int
		totals   = repository.InventoryTotals{Value: decimal.Zero}
		pending  int
		logs     int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.analyticsRepo.CountActiveProducts(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: productos: %w", err)
		}
		products = n
		return nil
	})
	if !noLocation {
		g.Go(func() error {
			t, err := uc.analyticsRepo.InventoryTotals(gctx, scope)
			if err != nil {
				return fmt.Errorf("dashboard: inventario: %w", err)
			}
			totals = t
			return nil
		})
		g.Go(func() error {
			n, err := uc.analyticsRepo.CountMovements(gctx, entity.MovementStatusPending, scope)
			if err != nil {
				return fmt.Errorf("dashboard: movimientos: %w", err)
			}
			pending = n
			return nil
		})
	}
	g.Go(func() error {
		n, err := uc.analyticsRepo.CountActivityLogs(gctx, logsUser)
		if err != nil {
			return fmt.Errorf("dashboard: bitácora: %w", err)
		}
		logs = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if totals.Quantity > 0 {
		avg = totals.Value.Div(decimal.NewFromInt(totals.Quantity)).Round(2)
	}
	return &dto.DashboardResponse{Stats: dto.DashboardStatsDTO{
		TotalProducts:    products,
		TotalInventory:   totals.Quantity,
		PendingMovements: pending,
		ActivityLogs:     logs,
		TotalValue:       totals.Value.Round(2),
		AvgValue:         avg,
		UniqueProducts:   totals.UniqueProducts,
	}}, nil
}
