package memory

import (
	"context"

	"github.com/jhoicas/Inventario-distribucion/internal/domain"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo movimientos, ítems y bitácora en memoria.
type MovementRepo struct {
	s    *Store
	inTx bool
}

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.st.movements[m.ID]; ok {
		return domain.ErrDuplicate
	}
	now := r.s.stamp()
	m.CreatedAt, m.UpdatedAt = now, now
	stored := *m
	stored.Items, stored.Activities = nil, nil
	r.s.st.movements[m.ID] = stored
	r.s.st.movOrder = append(r.s.st.movOrder, m.ID)
	return nil
}

func (r *MovementRepo) CreateItems(_ context.Context, items []entity.MovementItem) error {
	defer r.s.guard(r.inTx)()
	for _, it := range items {
		if _, ok := r.s.st.movements[it.MovementID]; !ok {
			return domain.ErrNotFound
		}
		it.ProductName = ""
		r.s.st.items[it.MovementID] = append(r.s.st.items[it.MovementID], it)
	}
	return nil
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	defer r.s.guard(r.inTx)()
	return r.lookup(id), nil
}

// GetForUpdate en memoria el bloqueo lo da Run.
func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	return r.GetByID(ctx, id)
}

func (r *MovementRepo) lookup(id string) *entity.Movement {
	m, ok := r.s.st.movements[id]
	if !ok {
		return nil
	}
	if l, ok := r.s.st.locations[m.FromLocationID]; ok {
		m.FromLocationName = l.Name
	}
	if l, ok := r.s.st.locations[m.ToLocationID]; ok {
		m.ToLocationName = l.Name
	}
	if u, ok := r.s.st.users[m.CreatedBy]; ok {
		m.CreatedByName = u.Name
	}
	return &m
}

func (r *MovementRepo) UpdateStatus(_ context.Context, id, status string) error {
	defer r.s.guard(r.inTx)()
	m, ok := r.s.st.movements[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Status = status
	m.UpdatedAt = r.s.stamp()
	r.s.st.movements[id] = m
	return nil
}

// List más recientes primero.
func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	defer r.s.guard(r.inTx)()
	out := make([]*entity.Movement, 0)
	for i := len(r.s.st.movOrder) - 1; i >= 0; i-- {
		m := r.lookup(r.s.st.movOrder[i])
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if f.FromLocationID != "" && m.FromLocationID != f.FromLocationID {
			continue
		}
		if f.ToLocationID != "" && m.ToLocationID != f.ToLocationID {
			continue
		}
		if f.Scope != "" && m.FromLocationID != f.Scope && m.ToLocationID != f.Scope {
			continue
		}
		out = append(out, m)
	}
	return paginate(out, f.Limit, f.Offset), nil
}

func (r *MovementRepo) ListItems(_ context.Context, movementID string) ([]entity.MovementItem, error) {
	defer r.s.guard(r.inTx)()
	src := r.s.st.items[movementID]
	out := make([]entity.MovementItem, len(src))
	for i, it := range src {
		if p, ok := r.s.st.products[it.ProductID]; ok {
			it.ProductName = p.Name
		}
		out[i] = it
	}
	return out, nil
}

func (r *MovementRepo) AddActivity(_ context.Context, a *entity.MovementActivity) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.st.movements[a.MovementID]; !ok {
		return domain.ErrNotFound
	}
	a.CreatedAt = r.s.stamp()
	stored := *a
	stored.UserName = ""
	r.s.st.activities[a.MovementID] = append(r.s.st.activities[a.MovementID], stored)
	return nil
}

// ListActivities en orden cronológico.
func (r *MovementRepo) ListActivities(_ context.Context, movementID string) ([]entity.MovementActivity, error) {
	defer r.s.guard(r.inTx)()
	src := r.s.st.activities[movementID]
	out := make([]entity.MovementActivity, len(src))
	for i, a := range src {
		if u, ok := r.s.st.users[a.UserID]; ok {
			a.UserName = u.Name
		}
		out[i] = a
	}
	return out, nil
}

func (r *MovementRepo) ListItemsFor(ctx context.Context, movementIDs []string) (map[string][]entity.MovementItem, error) {
	out := make(map[string][]entity.MovementItem, len(movementIDs))
	for _, id := range movementIDs {
		items, err := r.ListItems(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			out[id] = items
		}
	}
	return out, nil
}

func (r *MovementRepo) ListActivitiesFor(ctx context.Context, movementIDs []string) (map[string][]entity.MovementActivity, error) {
	out := make(map[string][]entity.MovementActivity, len(movementIDs))
	for _, id := range movementIDs {
		acts, err := r.ListActivities(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(acts) > 0 {
			out[id] = acts
		}
	}
	return out, nil
}
