package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provider-discovery/internal/config"
	"github.com/provider-discovery/internal/domain"
	"github.com/provider-discovery/internal/pkg/errors"
	"github.com/provider-discovery/internal/usecase"
)

func TestQueryPlanner_Plan(t *testing.T) {
	planner := usecase.NewQueryPlanner(config.DefaultDiscovery())
	origin := domain.Point{Lat: 39.90, Lon: 32.85}

	t.Run("coarse detail maps to global band and grid strategy", func(t *testing.T) {
		plan, err := planner.Plan(origin, 5, "", domain.ModeMap)
		require.NoError(t, err)

		assert.Equal(t, float64(20000), plan.RadiusKm)
		assert.Equal(t, 5000, plan.Cap)
		assert.Equal(t, domain.StrategyGrid, plan.Strategy)
		assert.Equal(t, 1, plan.GridPrecision)
	})

	t.Run("mid detail maps to regional band, grid still wins below threshold", func(t *testing.T) {
		plan, err := planner.Plan(origin, 9, "", domain.ModeList)
		require.NoError(t, err)

		assert.Equal(t, float64(2000), plan.RadiusKm)
		assert.Equal(t, 1000, plan.Cap)
		assert.Equal(t, domain.StrategyGrid, plan.Strategy)
		assert.Equal(t, 2, plan.GridPrecision)
	})

	t.Run("high detail map mode uses direct radius query", func(t *testing.T) {
		plan, err := planner.Plan(origin, 12, "", domain.ModeMap)
		require.NoError(t, err)

		assert.Equal(t, float64(500), plan.RadiusKm)
		assert.Equal(t, 200, plan.Cap)
		assert.Equal(t, domain.StrategyRadius, plan.Strategy)
	})

	t.Run("high detail list mode uses diverse feed", func(t *testing.T) {
		plan, err := planner.Plan(origin, 12, "", domain.ModeList)
		require.NoError(t, err)

		assert.Equal(t, domain.StrategyFeed, plan.Strategy)
	})

	t.Run("category filter is normalized into the plan", func(t *testing.T) {
		plan, err := planner.Plan(origin, 12, "crane", domain.ModeMap)
		require.NoError(t, err)

		assert.Equal(t, domain.MainTypeRescue, plan.Match.MainType)
	})

	t.Run("invalid origin is rejected before any store query", func(t *testing.T) {
		_, err := planner.Plan(domain.Point{Lat: 91, Lon: 32.85}, 12, "", domain.ModeMap)
		assert.Equal(t, errors.ErrInvalidLocation, err)

		_, err = planner.Plan(domain.Point{Lat: 39.90, Lon: -181}, 12, "", domain.ModeMap)
		assert.Equal(t, errors.ErrInvalidLocation, err)
	})

	t.Run("out of range detail level is rejected", func(t *testing.T) {
		_, err := planner.Plan(origin, 19, "", domain.ModeMap)
		assert.Equal(t, errors.ErrInvalidDetailLevel, err)
	})
}
