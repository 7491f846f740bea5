package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Inventario-distribucion/internal/domain"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
)

var (
	_ repository.LocationRepository = (*LocationRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// LocationRepo ubicaciones en memoria.
type LocationRepo struct {
	s    *Store
	inTx bool
}

func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.st.locations[l.ID]; ok {
		return domain.ErrDuplicate
	}
	now := r.s.stamp()
	l.CreatedAt, l.UpdatedAt = now, now
	r.s.st.locations[l.ID] = *l
	return nil
}

func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	defer r.s.guard(r.inTx)()
	l, ok := r.s.st.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *LocationRepo) List(_ context.Context) ([]*entity.Location, error) {
	defer r.s.guard(r.inTx)()
	out := make([]*entity.Location, 0, len(r.s.st.locations))
	for _, l := range r.s.st.locations {
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ProductRepo productos en memoria.
type ProductRepo struct {
	s    *Store
	inTx bool
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.st.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	if p.SKU != "" {
		for _, other := range r.s.st.products {
			if strings.EqualFold(other.SKU, p.SKU) {
				return domain.ErrDuplicate
			}
		}
	}
	now := r.s.stamp()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.st.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.s.guard(r.inTx)()
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	defer r.s.guard(r.inTx)()
	for _, p := range r.s.st.products {
		if sku != "" && strings.EqualFold(p.SKU, sku) {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	defer r.s.guard(r.inTx)()
	out := make([]*entity.Product, 0, len(r.s.st.products))
	for _, p := range r.s.st.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	defer r.s.guard(false)()
	for _, other := range r.s.st.users {
		if other.ID == u.ID || strings.EqualFold(other.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	now := r.s.stamp()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.st.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.s.guard(false)()
	u, ok := r.s.st.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.s.guard(false)()
	for _, u := range r.s.st.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(in) {
			return in[:0]
		}
		in = in[offset:]
	}
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
