// Package inventory implementa el libro de inventario: cantidad y precio por (ubicación, producto).
package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-distribucion/internal/application/dto"
	"github.com/jhoicas/Inventario-distribucion/internal/application/ports"
	"github.com/jhoicas/Inventario-distribucion/internal/domain"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/authz"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
)

// Acciones que el libro deja en la bitácora general.
const (
	ActionInitialStock = "Initial Stock Added"
	ActionAdjusted     = "Inventory Adjusted"
)

// LedgerUseCase consultas y ajustes atómicos de inventario.
type LedgerUseCase struct {
	txRunner  ports.TxRunner
	inventory repository.InventoryRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner ports.TxRunner, inventory repository.InventoryRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, inventory: inventory}
}

// GetQuantity cantidad actual; 0 si no hay registro.
func (uc *LedgerUseCase) GetQuantity(ctx context.Context, locationID, productID string) (int, error) {
	rec, err := uc.inventory.Get(ctx, locationID, productID)
	if err != nil {
		return 0, err
	}
	return rec.Quantity, nil
}

// HasSufficientStock indica si hay al menos required unidades.
func (uc *LedgerUseCase) HasSufficientStock(ctx context.Context, locationID, productID string, required int) (bool, error) {
	qty, err := uc.GetQuantity(ctx, locationID, productID)
	if err != nil {
		return false, err
	}
	return qty >= required, nil
}

// Adjust aplica delta en su propia transacción con la fila bloqueada.
func (uc *LedgerUseCase) Adjust(ctx context.Context, locationID, productID string, delta int, unitPrice *decimal.Decimal) (*entity.InventoryRecord, error) {
	var out *entity.InventoryRecord
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		rec, err := ApplyDelta(ctx, repos.Inventory, locationID, productID, delta, unitPrice)
		out = rec
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyDelta suma delta al registro usando repo (debe estar atado a la tx del caller).
// Crea el registro solo si no existe y delta > 0. Si el resultado queda negativo devuelve
// *domain.InsufficientStockError sin escribir. unitPrice solo se actualiza si viene informado.
func ApplyDelta(ctx context.Context, repo repository.InventoryRepository, locationID, productID string, delta int, unitPrice *decimal.Decimal) (*entity.InventoryRecord, error) {
	if delta == 0 && unitPrice == nil {
		return repo.Get(ctx, locationID, productID)
	}
	rec, err := repo.GetForUpdate(ctx, locationID, productID)
	if err != nil {
		return nil, fmt.Errorf("lock inventory %s/%s: %w", locationID, productID, err)
	}
	if rec.ID == "" {
		if delta <= 0 {
			return nil, &domain.InsufficientStockError{
				LocationID: locationID, ProductID: productID, Required: -delta, Available: 0,
			}
		}
		rec.ID = uuid.New().String()
	}
	if rec.Quantity+delta < 0 {
		return nil, &domain.InsufficientStockError{
			LocationID: locationID, ProductID: productID, Required: -delta, Available: rec.Quantity,
		}
	}
	rec.Quantity += delta
	if unitPrice != nil {
		rec.UnitPrice = *unitPrice
	}
	if err := repo.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// AddInitialStock carga stock en una bodega. El precio cae al del registro existente
// y luego al de catálogo si no viene informado.
func (uc *LedgerUseCase) AddInitialStock(ctx context.Context, actor authz.Actor, in dto.InitialStockRequest) (*dto.InventoryRecordResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	if in.UnitPrice != nil {
		if problem := entity.PriceProblem(*in.UnitPrice); problem != "" {
			return nil, domain.NewValidationError("unit_price", problem)
		}
	}
	var out *entity.InventoryRecord
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		loc, err := repos.Locations.GetByID(ctx, in.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return fmt.Errorf("ubicación %s: %w", in.LocationID, domain.ErrNotFound)
		}
		if !authz.CanAddInitialStock(actor, loc.ID) {
			return domain.ErrForbidden
		}
		if loc.Type != entity.LocationTypeWarehouse {
			return domain.NewValidationError("location_id", "el stock inicial solo se carga en bodegas")
		}
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrNotFound)
		}

		price := in.UnitPrice
		if price == nil {
			current, err := repos.Inventory.GetForUpdate(ctx, loc.ID, product.ID)
			if err != nil {
				return err
			}
			p := product.UnitPrice
			if current.ID != "" && current.UnitPrice.IsPositive() {
				p = current.UnitPrice
			}
			price = &p
		}
		rec, err := ApplyDelta(ctx, repos.Inventory, loc.ID, product.ID, in.Quantity, price)
		if err != nil {
			return err
		}
		out = rec
		return repos.ActivityLog.Record(ctx, &entity.ActivityLog{
			ID:          uuid.New().String(),
			UserID:      actor.UserID,
			Action:      ActionInitialStock,
			Description: fmt.Sprintf("Se agregaron %d unidades de %s a %s", in.Quantity, product.Name, loc.Name),
			EntityType:  entity.EntityTypeInventory,
			EntityID:    rec.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return ToRecordResponse(out), nil
}

// AdjustStock ajuste manual (solo admin); deja rastro en la bitácora general.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, actor authz.Actor, in dto.AdjustStockRequest) (*dto.InventoryRecordResponse, error) {
	if !authz.CanAdjust(actor) {
		return nil, domain.ErrForbidden
	}
	if in.Delta == 0 {
		return nil, domain.NewValidationError("delta", "no puede ser cero")
	}
	if in.UnitPrice != nil {
		if problem := entity.PriceProblem(*in.UnitPrice); problem != "" {
			return nil, domain.NewValidationError("unit_price", problem)
		}
	}
	var out *entity.InventoryRecord
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		loc, err := repos.Locations.GetByID(ctx, in.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return fmt.Errorf("ubicación %s: %w", in.LocationID, domain.ErrNotFound)
		}
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrNotFound)
		}
		rec, err := ApplyDelta(ctx, repos.Inventory, loc.ID, product.ID, in.Delta, in.UnitPrice)
		if err != nil {
			return err
		}
		out = rec
		desc := fmt.Sprintf("Ajuste de %+d unidades de %s en %s", in.Delta, product.Name, loc.Name)
		if in.Reason != "" {
			desc += ": " + in.Reason
		}
		return repos.ActivityLog.Record(ctx, &entity.ActivityLog{
			ID:          uuid.New().String(),
			UserID:      actor.UserID,
			Action:      ActionAdjusted,
			Description: desc,
			EntityType:  entity.EntityTypeInventory,
			EntityID:    rec.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return ToRecordResponse(out), nil
}

// List inventario visible para el actor. Un usuario no admin solo ve su ubicación.
func (uc *LedgerUseCase) List(ctx context.Context, actor authz.Actor, q dto.InventoryQuery) ([]dto.InventoryRecordResponse, error) {
	filter := repository.InventoryFilter{LocationID: q.LocationID, ProductID: q.ProductID}
	if !actor.IsAdmin() {
		if !actor.HasLocation() {
			return []dto.InventoryRecordResponse{}, nil
		}
		if q.LocationID != "" && !authz.CanViewLocation(actor, q.LocationID) {
			return nil, domain.ErrForbidden
		}
		filter.LocationID = actor.LocationID
	}
	records, err := uc.inventory.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, *ToRecordResponse(r))
	}
	return out, nil
}

// ToRecordResponse mapea la entidad al DTO de salida.
func ToRecordResponse(r *entity.InventoryRecord) *dto.InventoryRecordResponse {
	if r == nil {
		return nil
	}
	return &dto.InventoryRecordResponse{
		ID:           r.ID,
		LocationID:   r.LocationID,
		LocationName: r.LocationName,
		ProductID:    r.ProductID,
		ProductName:  r.ProductName,
		ProductSKU:   r.ProductSKU,
		Category:     r.Category,
		Quantity:     r.Quantity,
		UnitPrice:    r.UnitPrice,
		UpdatedAt:    r.UpdatedAt,
	}
}
