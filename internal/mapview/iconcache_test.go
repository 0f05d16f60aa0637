package mapview_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/provider-discovery/internal/domain"
	"github.com/provider-discovery/internal/mapview"
)

func TestIconCache_Marker(t *testing.T) {
	t.Run("same key returns the same asset", func(t *testing.T) {
		cache := mapview.NewIconCache()

		first := cache.Marker("flatbed", false)
		second := cache.Marker("flatbed", false)

		assert.Same(t, first, second)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("activity is part of the key", func(t *testing.T) {
		cache := mapview.NewIconCache()

		idle := cache.Marker("flatbed", false)
		active := cache.Marker("flatbed", true)

		assert.NotSame(t, idle, active)
		assert.Equal(t, 32, idle.Size)
		assert.Equal(t, 44, active.Size)
		assert.True(t, active.Active)
		assert.Equal(t, 2, cache.Len())
	})

	t.Run("fresh cache starts empty", func(t *testing.T) {
		cache := mapview.NewIconCache()
		assert.Equal(t, 0, cache.Len())
	})
}

func TestIconCache_Badge(t *testing.T) {
	cache := mapview.NewIconCache()

	first := cache.Badge(domain.MainTypeRescue, 3)
	second := cache.Badge(domain.MainTypeRescue, 3)
	other := cache.Badge(domain.MainTypeRescue, 4)

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
	assert.Equal(t, "3", first.Label)
	assert.Equal(t, 2, cache.Len())
}

func TestIconCache_ConcurrentFill(t *testing.T) {
	cache := mapview.NewIconCache()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Marker("flatbed", false)
			cache.Badge(domain.MainTypeFreight, 5)
		}()
	}
	wg.Wait()

	// Races on one key resolve to a single stored asset
	assert.Equal(t, 2, cache.Len())
	assert.Same(t, cache.Marker("flatbed", false), cache.Marker("flatbed", false))
}
