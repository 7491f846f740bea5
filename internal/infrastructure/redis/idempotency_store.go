package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Inventario-distribucion/internal/application/movement"
)

const idempotencyPrefix = "idempotency:movements:"

var _ movement.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore reserva claves con SET NX y expiración.
type IdempotencyStore struct {
	client *goredis.Client
}

// NewIdempotencyStore construye el adaptador.
func NewIdempotencyStore(client *goredis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Acquire devuelve false si la clave ya existía.
func (s *IdempotencyStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, idempotencyPrefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

// Release libera la clave para permitir reintentos.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
