package movement

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
)

// IdempotencyStore reserva claves Idempotency-Key por un TTL.
// Acquire devuelve false si la clave ya estaba reservada.
type IdempotencyStore interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// DeliveryNoteRenderer genera la remisión (PDF) de un movimiento con ítems cargados.
type DeliveryNoteRenderer interface {
	Render(m *entity.Movement) ([]byte, error)
}
