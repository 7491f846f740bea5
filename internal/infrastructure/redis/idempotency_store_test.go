package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-distribucion/internal/infrastructure/redis"
	"github.com/jhoicas/Inventario-distribucion/pkg/config"
)

func newStore(t *testing.T) (*redis.IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewIdempotencyStore(client), mr
}

func TestAcquire_SegundaVezFalla(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	ok, err := store.Acquire(ctx, "u1:abc", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Acquire(ctx, "u1:abc", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Acquire(ctx, "u2:abc", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRelease_PermiteReintento(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	_, err := store.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "k"))

	ok, err := store.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAcquire_ExpiraConTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newStore(t)

	_, err := store.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)

	ok, err := store.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewClient_SinServidor(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err := redis.NewClient(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}
