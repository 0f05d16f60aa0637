package mapview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provider-discovery/internal/domain"
	"github.com/provider-discovery/internal/mapview"
)

func renderItem(id, subType string, lat, lon float64) domain.ResultItem {
	return domain.ResultItem{
		Provider: domain.Provider{
			ID:       id,
			MainType: domain.MainTypeRescue,
			SubType:  subType,
			Lat:      lat,
			Lon:      lon,
		},
	}
}

func newEngine(t *testing.T) *mapview.Engine {
	t.Helper()
	return mapview.NewEngine(mapview.DefaultConfig(), mapview.NewIconCache())
}

func TestEngine_Threshold(t *testing.T) {
	engine := newEngine(t)

	assert.Equal(t, 10.0, engine.Threshold(0))
	assert.Equal(t, 5.0, engine.Threshold(1))
	assert.Equal(t, 10.0/1024, engine.Threshold(10))

	// Halves with each detail step
	for detail := 0; detail < 18; detail++ {
		assert.InDelta(t, engine.Threshold(detail)/2, engine.Threshold(detail+1), 1e-12)
	}
}

func TestEngine_Expanded(t *testing.T) {
	engine := newEngine(t)

	assert.False(t, engine.Expanded(13))
	assert.True(t, engine.Expanded(14))
	assert.True(t, engine.Expanded(18))
}

func TestEngine_Build(t *testing.T) {
	// At detail 10 the threshold is ~0.0098 degrees
	const detail = 10

	t.Run("nearby same-subtype positions collapse into one cluster", func(t *testing.T) {
		engine := newEngine(t)
		items := []domain.ResultItem{
			renderItem("a", "flatbed", 39.9000, 32.8500),
			renderItem("b", "flatbed", 39.9010, 32.8510),
			renderItem("c", "flatbed", 39.9020, 32.8490),
		}

		set := engine.Build(items, detail, "")

		assert.Empty(t, set.Singles)
		require.Len(t, set.Clusters, 1)
		assert.Equal(t, 3, set.Clusters[0].Count)
		assert.Equal(t, []string{"a", "b", "c"}, set.Clusters[0].MemberIDs)
		assert.Equal(t, 39.9000, set.Clusters[0].Anchor.Lat) // anchored at first member
	})

	t.Run("different subtypes never share a cluster", func(t *testing.T) {
		engine := newEngine(t)
		items := []domain.ResultItem{
			renderItem("a", "flatbed", 39.9000, 32.8500),
			renderItem("b", "lowbed", 39.9001, 32.8501),
		}

		set := engine.Build(items, detail, "")

		assert.Len(t, set.Singles, 2)
		assert.Empty(t, set.Clusters)
	})

	t.Run("partition is exact, no duplicates or losses", func(t *testing.T) {
		engine := newEngine(t)
		items := []domain.ResultItem{
			renderItem("a", "flatbed", 39.9000, 32.8500),
			renderItem("b", "flatbed", 39.9010, 32.8510),
			renderItem("c", "lowbed", 39.9000, 32.8500),
			renderItem("d", "flatbed", 41.0000, 29.0000), // far away
			renderItem("e", "lowbed", 39.9005, 32.8505),
		}

		set := engine.Build(items, detail, "")

		total := len(set.Singles)
		seen := map[string]bool{}
		for _, s := range set.Singles {
			assert.False(t, seen[s.Provider.ID])
			seen[s.Provider.ID] = true
		}
		for _, c := range set.Clusters {
			total += c.Count
			assert.Equal(t, c.Count, len(c.MemberIDs))
			for _, id := range c.MemberIDs {
				assert.False(t, seen[id])
				seen[id] = true
			}
		}
		assert.Equal(t, len(items), total)
	})

	t.Run("active position stays a single marker", func(t *testing.T) {
		engine := newEngine(t)
		items := []domain.ResultItem{
			renderItem("a", "flatbed", 39.9000, 32.8500),
			renderItem("b", "flatbed", 39.9010, 32.8510),
			renderItem("c", "flatbed", 39.9020, 32.8490),
		}

		set := engine.Build(items, detail, "b")

		require.Len(t, set.Singles, 1)
		assert.Equal(t, "b", set.Singles[0].Provider.ID)
		require.Len(t, set.Clusters, 1)
		assert.Equal(t, 2, set.Clusters[0].Count)
		assert.NotContains(t, set.Clusters[0].MemberIDs, "b")
	})

	t.Run("expansion level jumps by the step and is capped", func(t *testing.T) {
		engine := newEngine(t)
		items := []domain.ResultItem{
			renderItem("a", "flatbed", 39.9000, 32.8500),
			renderItem("b", "flatbed", 39.9001, 32.8501),
		}

		set := engine.Build(items, 10, "")
		require.Len(t, set.Clusters, 1)
		assert.Equal(t, 13, set.Clusters[0].ExpansionDetailLevel)

		// Not possible to go past expanded detail via a real zoom level,
		// but the cap still holds for configs with a lower expanded bound
		capped := mapview.NewEngine(mapview.Config{
			BaseUnit:       10.0,
			ExpandedDetail: 17,
			ExpansionStep:  3,
			MaxDetail:      18,
		}, mapview.NewIconCache())
		set = capped.Build(items, 16, "")
		require.Len(t, set.Clusters, 1)
		assert.Equal(t, 18, set.Clusters[0].ExpansionDetailLevel)
	})

	t.Run("expanded detail renders everything as singles", func(t *testing.T) {
		engine := newEngine(t)
		items := []domain.ResultItem{
			renderItem("a", "flatbed", 39.9000, 32.8500),
			renderItem("b", "flatbed", 39.9000, 32.8500), // exact same point
		}

		set := engine.Build(items, 14, "")

		assert.Len(t, set.Singles, 2)
		assert.Empty(t, set.Clusters)
	})

	t.Run("reference scenario separates at high detail", func(t *testing.T) {
		// ~16km apart: threshold at detail 15 is way below the gap,
		// and detail 15 is past the expanded bound anyway
		engine := newEngine(t)
		items := []domain.ResultItem{
			renderItem("near", "flatbed", 39.901, 32.851),
			renderItem("far", "flatbed", 39.998, 32.999),
		}

		set := engine.Build(items, 15, "")

		assert.Len(t, set.Singles, 2)
		assert.Empty(t, set.Clusters)
	})

	t.Run("same input gives the same partition", func(t *testing.T) {
		engine := newEngine(t)
		items := []domain.ResultItem{
			renderItem("a", "flatbed", 39.9000, 32.8500),
			renderItem("b", "flatbed", 39.9010, 32.8510),
			renderItem("c", "lowbed", 39.9000, 32.8500),
		}

		first := engine.Build(items, detail, "a")
		second := engine.Build(items, detail, "a")

		assert.Equal(t, first, second)
	})

	t.Run("empty input yields an empty render set", func(t *testing.T) {
		engine := newEngine(t)
		set := engine.Build(nil, detail, "")

		assert.Empty(t, set.Singles)
		assert.Empty(t, set.Clusters)
	})
}
