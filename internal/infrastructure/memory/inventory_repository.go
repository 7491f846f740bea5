package memory

import (
	"context"

	"github.com/jhoicas/Inventario-distribucion/internal/domain"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo registros de inventario en memoria.
type InventoryRepo struct {
	s    *Store
	inTx bool
}

func (r *InventoryRepo) Get(_ context.Context, locationID, productID string) (*entity.InventoryRecord, error) {
	defer r.s.guard(r.inTx)()
	return r.lookup(locationID, productID), nil
}

// GetForUpdate en memoria el bloqueo lo da Run; fuera de tx equivale a Get.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, locationID, productID string) (*entity.InventoryRecord, error) {
	return r.Get(ctx, locationID, productID)
}

func (r *InventoryRepo) lookup(locationID, productID string) *entity.InventoryRecord {
	rec, ok := r.s.st.inventory[inventoryKey{locationID, productID}]
	if !ok {
		return &entity.InventoryRecord{LocationID: locationID, ProductID: productID}
	}
	return &rec
}

func (r *InventoryRepo) Upsert(_ context.Context, rec *entity.InventoryRecord) error {
	defer r.s.guard(r.inTx)()
	if rec.Quantity < 0 {
		return domain.ErrInsufficientStock
	}
	key := inventoryKey{rec.LocationID, rec.ProductID}
	now := r.s.stamp()
	if existing, ok := r.s.st.inventory[key]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		if rec.ID == "" {
			return domain.NewValidationError("id", "requerido para registros nuevos")
		}
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	stored := *rec
	stored.ProductName, stored.ProductSKU, stored.Category, stored.LocationName = "", "", "", ""
	r.s.st.inventory[key] = stored
	return nil
}

func (r *InventoryRepo) List(_ context.Context, filter repository.InventoryFilter) ([]*entity.InventoryRecord, error) {
	defer r.s.guard(r.inTx)()
	out := make([]*entity.InventoryRecord, 0)
	for key, rec := range r.s.st.inventory {
		if filter.LocationID != "" && key.locationID != filter.LocationID {
			continue
		}
		if filter.ProductID != "" && key.productID != filter.ProductID {
			continue
		}
		rec := rec
		if p, ok := r.s.st.products[rec.ProductID]; ok {
			rec.ProductName, rec.ProductSKU, rec.Category = p.Name, p.SKU, p.Category
		}
		if l, ok := r.s.st.locations[rec.LocationID]; ok {
			rec.LocationName = l.Name
		}
		out = append(out, &rec)
	}
	sortRecords(out)
	return out, nil
}
