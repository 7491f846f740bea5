package memory

import (
	"context"

	"github.com/jhoicas/Inventario-distribucion/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks con el almacén bloqueado; si fn falla se restaura el estado previo.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run serializa la transacción y hace rollback restaurando la foto inicial.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := r.s.st.clone()
	repos := ports.TxRepos{
		Locations:   &LocationRepo{s: r.s, inTx: true},
		Products:    &ProductRepo{s: r.s, inTx: true},
		Inventory:   &InventoryRepo{s: r.s, inTx: true},
		Movements:   &MovementRepo{s: r.s, inTx: true},
		ActivityLog: &ActivityLogRepo{s: r.s, inTx: true},
	}
	if err := fn(repos); err != nil {
		r.s.st = snapshot
		return err
	}
	return nil
}
