package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitStore_Allow(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewRateLimitStore(client)
	now := time.Unix(1700000000, 0)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	t.Run("allows requests within limit", func(t *testing.T) {
		for i := 1; i <= 3; i++ {
			allowed, remaining, err := store.Allow(ctx, "user1:pix", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed, "request %d should be allowed", i)
			assert.Equal(t, 3-i, remaining)
		}
	})

	t.Run("blocks requests over limit", func(t *testing.T) {
		allowed, remaining, err := store.Allow(ctx, "user1:pix", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Zero(t, remaining)
	})

	t.Run("different keys are independent", func(t *testing.T) {
		allowed, remaining, err := store.Allow(ctx, "user2:pix", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 4, remaining)
	})

	t.Run("next window starts fresh", func(t *testing.T) {
		key := "user3:auth"
		_, _, err := store.Allow(ctx, key, 1, time.Minute)
		require.NoError(t, err)

		allowed, _, err := store.Allow(ctx, key, 1, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)

		now = now.Add(time.Minute)
		allowed, _, err = store.Allow(ctx, key, 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("window key expires", func(t *testing.T) {
		_, _, err := store.Allow(ctx, "user4:pix", 10, time.Minute)
		require.NoError(t, err)
		require.NotEmpty(t, mr.Keys())

		mr.FastForward(2 * time.Minute)
		assert.Empty(t, mr.Keys())
	})
}
