package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados del tablero sobre el almacén en memoria.
type AnalyticsRepo struct {
	s *Store
}

func (r *AnalyticsRepo) CountActiveProducts(_ context.Context) (int, error) {
	defer r.s.guard(false)()
	n := 0
	for _, p := range r.s.st.products {
		if p.IsActive() {
			n++
		}
	}
	return n, nil
}

func (r *AnalyticsRepo) InventoryTotals(_ context.Context, locationID string) (repository.InventoryTotals, error) {
	defer r.s.guard(false)()
	t := repository.InventoryTotals{Value: decimal.Zero}
	seen := make(map[string]struct{})
	for key, rec := range r.s.st.inventory {
		if locationID != "" && key.locationID != locationID {
			continue
		}
		t.Quantity += int64(rec.Quantity)
		t.Value = t.Value.Add(rec.UnitPrice.Mul(decimal.NewFromInt(int64(rec.Quantity))))
		seen[key.productID] = struct{}{}
	}
	t.UniqueProducts = len(seen)
	return t, nil
}

func (r *AnalyticsRepo) CountMovements(_ context.Context, status, scope string) (int, error) {
	defer r.s.guard(false)()
	n := 0
	for _, m := range r.s.st.movements {
		if status != "" && m.Status != status {
			continue
		}
		if scope != "" && m.FromLocationID != scope && m.ToLocationID != scope {
			continue
		}
		n++
	}
	return n, nil
}

func (r *AnalyticsRepo) CountActivityLogs(_ context.Context, userID string) (int, error) {
	defer r.s.guard(false)()
	if userID == "" {
		return len(r.s.st.logs), nil
	}
	n := 0
	for _, e := range r.s.st.logs {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}
