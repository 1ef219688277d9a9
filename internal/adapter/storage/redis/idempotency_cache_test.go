package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestIdempotencyCache_SetAndGet(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewIdempotencyCache(client)
	ctx := context.Background()

	key := "0b7c9a8e-user:REQ-001"
	value := []byte(`{"pix_code":"000201","charge":{"amount":2550}}`)

	result, err := cache.Get(ctx, key)
	assert.NoError(t, err)
	assert.Nil(t, result)

	require.NoError(t, cache.Set(ctx, key, value, 24*time.Hour))

	result, err = cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, value, result)
	assert.True(t, mr.Exists(idempotencyPrefix+key))
}

func TestIdempotencyCache_TTLExpiry(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewIdempotencyCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "u:REQ-002", []byte(`{}`), time.Second))
	mr.FastForward(2 * time.Second)

	result, err := cache.Get(ctx, "u:REQ-002")
	assert.NoError(t, err)
	assert.Nil(t, result, "expired key should miss")
}

func TestIdempotencyCache_ServerDown(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewIdempotencyCache(client)
	mr.Close()

	_, err := cache.Get(context.Background(), "u:REQ-003")
	assert.ErrorContains(t, err, "redis idempotency get")
}
