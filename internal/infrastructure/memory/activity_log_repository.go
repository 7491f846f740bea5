package memory

import (
	"context"

	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo bitácora general en memoria (append-only).
type ActivityLogRepo struct {
	s    *Store
	inTx bool
}

func (r *ActivityLogRepo) Record(_ context.Context, e *entity.ActivityLog) error {
	defer r.s.guard(r.inTx)()
	e.CreatedAt = r.s.stamp()
	stored := *e
	stored.UserName, stored.UserEmail = "", ""
	r.s.st.logs = append(r.s.st.logs, stored)
	return nil
}

// ListRecent más recientes primero.
func (r *ActivityLogRepo) ListRecent(_ context.Context, userID string, limit int) ([]*entity.ActivityLog, error) {
	defer r.s.guard(r.inTx)()
	out := make([]*entity.ActivityLog, 0)
	for i := len(r.s.st.logs) - 1; i >= 0; i-- {
		e := r.s.st.logs[i]
		if userID != "" && e.UserID != userID {
			continue
		}
		if u, ok := r.s.st.users[e.UserID]; ok {
			e.UserName, e.UserEmail = u.Name, u.Email
		}
		out = append(out, &e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
