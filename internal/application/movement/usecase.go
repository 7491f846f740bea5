// Package movement implementa el motor de movimientos de stock entre ubicaciones:
// creación, transiciones de estado con traslado de inventario y consultas.
package movement

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Inventario-distribucion/internal/application/dto"
	"github.com/jhoicas/Inventario-distribucion/internal/application/inventory"
	"github.com/jhoicas/Inventario-distribucion/internal/application/ports"
	"github.com/jhoicas/Inventario-distribucion/internal/domain"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/authz"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/hierarchy"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/lifecycle"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
)

// Config opciones del motor.
type Config struct {
	IdempotencyTTL time.Duration
}

// MovementUseCase casos de uso del ciclo de vida de un movimiento.
type MovementUseCase struct {
	txRunner    ports.TxRunner
	movements   repository.MovementRepository
	idempotency IdempotencyStore
	notes       DeliveryNoteRenderer
	cfg         Config
	log         zerolog.Logger
}

// NewMovementUseCase construye el caso de uso. idempotency y notes pueden ser nil.
func NewMovementUseCase(
	txRunner ports.TxRunner,
	movements repository.MovementRepository,
	idempotency IdempotencyStore,
	notes DeliveryNoteRenderer,
	cfg Config,
	log zerolog.Logger,
) *MovementUseCase {
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 24 * time.Hour
	}
	return &MovementUseCase{
		txRunner:    txRunner,
		movements:   movements,
		idempotency: idempotency,
		notes:       notes,
		cfg:         cfg,
		log:         log,
	}
}

// Create registra un movimiento pendiente. No toca inventario: solo verifica que el origen
// tenga stock suficiente por producto (sumando líneas repetidas).
func (uc *MovementUseCase) Create(ctx context.Context, actor authz.Actor, in dto.CreateMovementRequest, idempotencyKey string) (_ *dto.MovementResponse, err error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	if idempotencyKey != "" && uc.idempotency != nil {
		key := actor.UserID + ":" + idempotencyKey
		ok, err := uc.idempotency.Acquire(ctx, key, uc.cfg.IdempotencyTTL)
		if err != nil {
			return nil, fmt.Errorf("idempotency: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("clave de idempotencia %q ya usada: %w", idempotencyKey, domain.ErrDuplicate)
		}
		defer func() {
			if err != nil {
				_ = uc.idempotency.Release(context.WithoutCancel(ctx), key)
			}
		}()
	}

	movementID := uuid.New().String()
	err = uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		from, err := repos.Locations.GetByID(ctx, in.FromLocationID)
		if err != nil {
			return err
		}
		if from == nil {
			return fmt.Errorf("ubicación origen %s: %w", in.FromLocationID, domain.ErrNotFound)
		}
		to, err := repos.Locations.GetByID(ctx, in.ToLocationID)
		if err != nil {
			return err
		}
		if to == nil {
			return fmt.Errorf("ubicación destino %s: %w", in.ToLocationID, domain.ErrNotFound)
		}
		if !authz.CanOriginate(actor, from.ID) {
			return fmt.Errorf("solo la ubicación origen puede crear el movimiento: %w", domain.ErrForbidden)
		}
		if err := hierarchy.Validate(from.Type, to.Type); err != nil {
			return err
		}

		required := make(map[string]int)
		items := make([]entity.MovementItem, 0, len(in.Items))
		for _, it := range in.Items {
			product, err := repos.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
			}
			if !product.IsActive() {
				return domain.NewValidationError("items", fmt.Sprintf("el producto %s está inactivo", product.Name))
			}
			unitPrice := decimal.Zero
			if it.UnitPrice != nil {
				unitPrice = *it.UnitPrice
			}
			required[it.ProductID] += it.Quantity
			items = append(items, entity.MovementItem{
				ID:         uuid.New().String(),
				MovementID: movementID,
				ProductID:  it.ProductID,
				Quantity:   it.Quantity,
				UnitPrice:  unitPrice,
			})
		}
		for _, productID := range sortedKeys(required) {
			rec, err := repos.Inventory.Get(ctx, from.ID, productID)
			if err != nil {
				return err
			}
			if rec.Quantity < required[productID] {
				return &domain.InsufficientStockError{
					LocationID: from.ID, ProductID: productID,
					Required: required[productID], Available: rec.Quantity,
				}
			}
		}

		m := &entity.Movement{
			ID:             movementID,
			FromLocationID: from.ID,
			ToLocationID:   to.ID,
			Status:         entity.MovementStatusPending,
			Notes:          strings.TrimSpace(in.Notes),
			CreatedBy:      actor.UserID,
		}
		if err := repos.Movements.Create(ctx, m); err != nil {
			return err
		}
		if err := repos.Movements.CreateItems(ctx, items); err != nil {
			return err
		}
		if err := repos.Movements.AddActivity(ctx, &entity.MovementActivity{
			ID:          uuid.New().String(),
			MovementID:  m.ID,
			Action:      entity.MovementActionCreated,
			Description: fmt.Sprintf("Movimiento creado de %s a %s con %d producto(s)", from.Name, to.Name, len(required)),
			UserID:      actor.UserID,
		}); err != nil {
			return err
		}
		return repos.ActivityLog.Record(ctx, &entity.ActivityLog{
			ID:          uuid.New().String(),
			UserID:      actor.UserID,
			Action:      "Movement Created",
			Description: fmt.Sprintf("Movimiento %s de %s a %s", m.ID, from.Name, to.Name),
			EntityType:  entity.EntityTypeMovement,
			EntityID:    m.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", movementID).
		Str("from", in.FromLocationID).
		Str("to", in.ToLocationID).
		Str("user_id", actor.UserID).
		Msg("movimiento creado")
	return uc.detail(ctx, movementID)
}

// Update aplica PUT /api/movements/:id: con Status intenta la transición; solo con Action
// agrega una anotación a la bitácora sin cambiar el estado.
func (uc *MovementUseCase) Update(ctx context.Context, actor authz.Actor, id string, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	switch {
	case in.Status != "":
		return uc.Transition(ctx, actor, id, in.Status, in.Action, in.Description)
	case strings.TrimSpace(in.Action) != "":
		return uc.Annotate(ctx, actor, id, in.Action, in.Description)
	}
	return nil, domain.NewValidationError("status", "se requiere status o action")
}

// Transition lleva el movimiento a target. En received descuenta el origen y acredita el
// destino en la misma transacción; cualquier faltante deshace todo.
// El estado se relee bajo bloqueo, así que un reintento sobre un movimiento ya recibido
// falla con InvalidTransition en lugar de mover stock dos veces.
func (uc *MovementUseCase) Transition(ctx context.Context, actor authz.Actor, id, target, action, description string) (*dto.MovementResponse, error) {
	if !lifecycle.IsKnownStatus(target) {
		return nil, domain.NewValidationError("status", fmt.Sprintf("estado desconocido %q", target))
	}
	var previous string
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		m, err := repos.Movements.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("movimiento %s: %w", id, domain.ErrNotFound)
		}
		// Quien no participa no conoce el estado: 403. Para los participantes manda la
		// máquina de estados y luego el permiso sobre la transición.
		if !authz.CanView(actor, m) {
			return fmt.Errorf("movimiento %s: %w", id, domain.ErrForbidden)
		}
		if err := lifecycle.Check(m.Status, target); err != nil {
			return err
		}
		if !authz.CanTransition(actor, m, target) {
			return fmt.Errorf("no puede pasar el movimiento a %s: %w", target, domain.ErrForbidden)
		}
		previous = m.Status

		if target == entity.MovementStatusReceived {
			if err := applyReceipt(ctx, repos, m); err != nil {
				return err
			}
		}
		if err := repos.Movements.UpdateStatus(ctx, m.ID, target); err != nil {
			return err
		}

		if strings.TrimSpace(action) == "" {
			action = lifecycle.DefaultAction(target)
		}
		if strings.TrimSpace(description) == "" {
			description = lifecycle.DefaultDescription(target)
		}
		if err := repos.Movements.AddActivity(ctx, &entity.MovementActivity{
			ID:          uuid.New().String(),
			MovementID:  m.ID,
			Action:      action,
			Description: description,
			UserID:      actor.UserID,
		}); err != nil {
			return err
		}
		return repos.ActivityLog.Record(ctx, &entity.ActivityLog{
			ID:          uuid.New().String(),
			UserID:      actor.UserID,
			Action:      "Movement " + lifecycle.DefaultAction(target),
			Description: fmt.Sprintf("Movimiento %s: %s → %s", m.ID, previous, target),
			EntityType:  entity.EntityTypeMovement,
			EntityID:    m.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", id).
		Str("from_status", previous).
		Str("to_status", target).
		Str("user_id", actor.UserID).
		Msg("transición de movimiento")
	return uc.detail(ctx, id)
}

// Annotate agrega una entrada a la bitácora del movimiento sin cambiar su estado.
func (uc *MovementUseCase) Annotate(ctx context.Context, actor authz.Actor, id, action, description string) (*dto.MovementResponse, error) {
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		m, err := repos.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("movimiento %s: %w", id, domain.ErrNotFound)
		}
		if !authz.CanView(actor, m) {
			return domain.ErrForbidden
		}
		return repos.Movements.AddActivity(ctx, &entity.MovementActivity{
			ID:          uuid.New().String(),
			MovementID:  m.ID,
			Action:      strings.TrimSpace(action),
			Description: description,
			UserID:      actor.UserID,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.detail(ctx, id)
}

// applyReceipt traslada el stock de todos los ítems. Las filas se bloquean en orden
// (location_id, product_id) para que dos recepciones concurrentes no se crucen.
func applyReceipt(ctx context.Context, repos ports.TxRepos, m *entity.Movement) error {
	items, err := repos.Movements.ListItems(ctx, m.ID)
	if err != nil {
		return err
	}
	qty := make(map[string]int)
	price := make(map[string]decimal.Decimal)
	for _, it := range items {
		qty[it.ProductID] += it.Quantity
		price[it.ProductID] = it.UnitPrice
	}
	products := sortedKeys(qty)

	type rowKey struct{ location, product string }
	keys := make([]rowKey, 0, 2*len(products))
	for _, p := range products {
		keys = append(keys, rowKey{m.FromLocationID, p}, rowKey{m.ToLocationID, p})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].location != keys[j].location {
			return keys[i].location < keys[j].location
		}
		return keys[i].product < keys[j].product
	})
	for _, k := range keys {
		if _, err := repos.Inventory.GetForUpdate(ctx, k.location, k.product); err != nil {
			return fmt.Errorf("lock inventory: %w", err)
		}
	}

	for _, p := range products {
		if _, err := inventory.ApplyDelta(ctx, repos.Inventory, m.FromLocationID, p, -qty[p], nil); err != nil {
			return err
		}
		snapshot := price[p]
		if _, err := inventory.ApplyDelta(ctx, repos.Inventory, m.ToLocationID, p, qty[p], &snapshot); err != nil {
			return err
		}
	}
	return nil
}

// Get devuelve el movimiento con ítems y bitácora si el actor puede verlo.
func (uc *MovementUseCase) Get(ctx context.Context, actor authz.Actor, id string) (*dto.MovementResponse, error) {
	m, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

// DeliveryNote genera la remisión en PDF del movimiento.
func (uc *MovementUseCase) DeliveryNote(ctx context.Context, actor authz.Actor, id string) ([]byte, error) {
	if uc.notes == nil {
		return nil, fmt.Errorf("remisión no configurada")
	}
	m, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return uc.notes.Render(m)
}

// List movimientos filtrados; un usuario no admin solo ve los de su ubicación.
func (uc *MovementUseCase) List(ctx context.Context, actor authz.Actor, q dto.MovementQuery) ([]dto.MovementResponse, error) {
	if q.Status != "" && !lifecycle.IsKnownStatus(q.Status) {
		return nil, domain.NewValidationError("status", fmt.Sprintf("estado desconocido %q", q.Status))
	}
	q.DefaultPage()
	filter := repository.MovementFilter{
		Status:         q.Status,
		FromLocationID: q.FromLocationID,
		ToLocationID:   q.ToLocationID,
		Limit:          q.Limit,
		Offset:         q.Offset,
	}
	if !actor.IsAdmin() {
		if !actor.HasLocation() {
			return []dto.MovementResponse{}, nil
		}
		filter.Scope = actor.LocationID
	}
	list, err := uc.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := uc.fillAll(ctx, list); err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

// fillAll carga ítems y bitácora de una página de movimientos con dos consultas.
func (uc *MovementUseCase) fillAll(ctx context.Context, list []*entity.Movement) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, len(list))
	for i, m := range list {
		ids[i] = m.ID
	}
	var (
		items map[string][]entity.MovementItem
		acts  map[string][]entity.MovementActivity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = uc.movements.ListItemsFor(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		acts, err = uc.movements.ListActivitiesFor(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	for _, m := range list {
		m.Items = items[m.ID]
		m.Activities = acts[m.ID]
	}
	return nil
}

func (uc *MovementUseCase) load(ctx context.Context, actor authz.Actor, id string) (*entity.Movement, error) {
	m, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("movimiento %s: %w", id, domain.ErrNotFound)
	}
	if !authz.CanView(actor, m) {
		return nil, domain.ErrForbidden
	}
	if err := uc.fill(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// fill carga ítems y bitácora en paralelo.
func (uc *MovementUseCase) fill(ctx context.Context, m *entity.Movement) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := uc.movements.ListItems(gctx, m.ID)
		m.Items = items
		return err
	})
	g.Go(func() error {
		acts, err := uc.movements.ListActivities(gctx, m.ID)
		m.Activities = acts
		return err
	})
	return g.Wait()
}

// detail recarga el movimiento recién escrito sin volver a evaluar permisos.
func (uc *MovementUseCase) detail(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.fill(ctx, m); err != nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

func validateCreate(in dto.CreateMovementRequest) error {
	var reasons []string
	if in.FromLocationID == "" {
		reasons = append(reasons, "from_location_id es requerido")
	}
	if in.ToLocationID == "" {
		reasons = append(reasons, "to_location_id es requerido")
	}
	if in.FromLocationID != "" && in.FromLocationID == in.ToLocationID {
		reasons = append(reasons, "el origen y el destino deben ser diferentes")
	}
	if len(in.Items) == 0 {
		reasons = append(reasons, "se requiere al menos un producto")
	}
	for i, it := range in.Items {
		if it.ProductID == "" {
			reasons = append(reasons, fmt.Sprintf("items[%d].product_id es requerido", i))
		}
		if it.Quantity <= 0 {
			reasons = append(reasons, fmt.Sprintf("items[%d].quantity debe ser mayor que cero", i))
		}
		if it.UnitPrice != nil {
			if problem := entity.PriceProblem(*it.UnitPrice); problem != "" {
				reasons = append(reasons, fmt.Sprintf("items[%d].unit_price %s", i, problem))
			}
		}
	}
	if len(reasons) > 0 {
		return &domain.ValidationError{Reason: domain.JoinReasons(reasons)}
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	out := &dto.MovementResponse{
		ID:               m.ID,
		FromLocationID:   m.FromLocationID,
		FromLocationName: m.FromLocationName,
		ToLocationID:     m.ToLocationID,
		ToLocationName:   m.ToLocationName,
		Status:           m.Status,
		Notes:            m.Notes,
		CreatedBy:        m.CreatedBy,
		CreatedByName:    m.CreatedByName,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	total := decimal.Zero
	out.Items = make([]dto.MovementItemResponse, 0, len(m.Items))
	for _, it := range m.Items {
		sub := it.Subtotal()
		total = total.Add(sub)
		out.Items = append(out.Items, dto.MovementItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    sub,
		})
	}
	out.Activities = make([]dto.MovementActivityResponse, 0, len(m.Activities))
	for _, a := range m.Activities {
		out.Activities = append(out.Activities, dto.MovementActivityResponse{
			ID:          a.ID,
			Action:      a.Action,
			Description: a.Description,
			UserID:      a.UserID,
			UserName:    a.UserName,
			CreatedAt:   a.CreatedAt,
		})
	}
	out.Total = &total
	return out
}
