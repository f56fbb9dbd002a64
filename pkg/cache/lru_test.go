package cache_test

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/rulekit/pkg/cache"
)

func TestLRU_Basic(t *testing.T) {
	t.Parallel()

	t.Run("put and get", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)
		c.Put("a", 1)
		c.Put("b", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("get non-existent", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)

		val, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Zero(t, val)
	})

	t.Run("update existing", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)
		c.Put("a", 1)
		c.Put("a", 10)

		val, _ := c.Get("a")
		assert.Equal(t, 10, val)
		assert.Equal(t, 1, c.Len())
	})
}

func TestLRU_Eviction(t *testing.T) {
	t.Parallel()

	t.Run("evicts least recently used", func(t *testing.T) {
		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("c", 3)

		_, ok := c.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("get updates recency", func(t *testing.T) {
		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Get("a")
		c.Put("c", 3)

		_, ok := c.Get("a")
		assert.True(t, ok)
		_, ok = c.Get("b")
		assert.False(t, ok)
	})
}

func TestLRU_TTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := cache.NewLRU[string, string](4, cache.WithTTL(time.Minute), cache.WithClock(func() time.Time { return now }))
	c.Put("host", "10.0.0.1")

	val, ok := c.Get("host")
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.1", val)

	now = now.Add(time.Minute)
	_, ok = c.Get("host")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestLRU_RemoveAndClear(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[int, int](4)
	c.Put(1, 1)
	c.Put(2, 2)

	assert.True(t, c.Remove(1))
	assert.False(t, c.Remove(1))

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestLRU_EdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("panics on zero capacity", func(t *testing.T) {
		assert.Panics(t, func() { cache.NewLRU[string, int](0) })
	})

	t.Run("concurrent access is safe", func(t *testing.T) {
		c := cache.NewLRU[string, int](16)
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				key := strconv.Itoa(i % 20)
				c.Put(key, i)
				c.Get(key)
			}()
		}
		wg.Wait()
		assert.LessOrEqual(t, c.Len(), 16)
	})
}
