package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bussearch/pkg/cache"
)

func TestMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		require.NoError(t, c.Set(ctx, "a", "1", time.Minute))

		v, ok := c.TryGet(ctx, "a")
		assert.True(t, ok)
		assert.Equal(t, "1", v)

		_, ok = c.TryGet(ctx, "missing")
		assert.False(t, ok)
	})

	t.Run("set replaces entry and its expiry", func(t *testing.T) {
		t.Parallel()
		clk := newClock()
		c := cache.NewMemory(cache.WithClock[string](clk.Now))

		require.NoError(t, c.Set(ctx, "a", "old", time.Minute))
		clk.Advance(50 * time.Second)
		require.NoError(t, c.Set(ctx, "a", "new", time.Minute))
		clk.Advance(30 * time.Second)

		v, ok := c.TryGet(ctx, "a")
		assert.True(t, ok)
		assert.Equal(t, "new", v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("expired entry is reaped on read", func(t *testing.T) {
		t.Parallel()
		clk := newClock()
		var evicted []string
		c := cache.NewMemory(
			cache.WithClock[int](clk.Now),
			cache.WithEvictCallback(func(key string, _ int) { evicted = append(evicted, key) }),
		)

		require.NoError(t, c.Set(ctx, "a", 1, time.Second))
		clk.Advance(time.Second)

		_, ok := c.TryGet(ctx, "a")
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())
		assert.Equal(t, []string{"a"}, evicted)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory(cache.WithCapacity[int](2))

		require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
		require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
		_, _ = c.TryGet(ctx, "a")
		require.NoError(t, c.Set(ctx, "c", 3, time.Minute))

		_, ok := c.TryGet(ctx, "b")
		assert.False(t, ok)
		_, ok = c.TryGet(ctx, "a")
		assert.True(t, ok)
		_, ok = c.TryGet(ctx, "c")
		assert.True(t, ok)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int]()
		require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
		require.NoError(t, c.Remove(ctx, "a"))
		require.NoError(t, c.Remove(ctx, "a"))

		_, ok := c.TryGet(ctx, "a")
		assert.False(t, ok)
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory(cache.WithCapacity[int](16))

		var wg sync.WaitGroup
		for i := range 32 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := string(rune('a' + i%20))
				_ = c.Set(ctx, key, i, time.Minute)
				_, _ = c.TryGet(ctx, key)
				if i%5 == 0 {
					_ = c.Remove(ctx, key)
				}
			}(i)
		}
		wg.Wait()
		assert.LessOrEqual(t, c.Len(), 16)
	})
}
