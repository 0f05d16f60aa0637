package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/provider-discovery/internal/pkg/utils"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.Equal(t, float64(0), utils.HaversineDistance(39.90, 32.85, 39.90, 32.85))
	})

	t.Run("known city pair within tolerance", func(t *testing.T) {
		// Ankara -> Istanbul, roughly 350km great-circle
		d := utils.HaversineDistance(39.93, 32.86, 41.01, 28.98)
		assert.InDelta(t, 350, d, 10)
	})

	t.Run("symmetric", func(t *testing.T) {
		ab := utils.HaversineDistance(39.901, 32.851, 39.998, 32.999)
		ba := utils.HaversineDistance(39.998, 32.999, 39.901, 32.851)
		assert.InDelta(t, ab, ba, 1e-9)
	})
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, utils.ValidateCoordinates(39.90, 32.85))
	assert.True(t, utils.ValidateCoordinates(90, 180))
	assert.True(t, utils.ValidateCoordinates(-90, -180))
	assert.False(t, utils.ValidateCoordinates(90.001, 0))
	assert.False(t, utils.ValidateCoordinates(0, -180.001))
}

func TestValidateDetailLevel(t *testing.T) {
	assert.True(t, utils.ValidateDetailLevel(0))
	assert.True(t, utils.ValidateDetailLevel(18))
	assert.False(t, utils.ValidateDetailLevel(-1))
	assert.False(t, utils.ValidateDetailLevel(19))
}

func TestRoundCoord(t *testing.T) {
	assert.Equal(t, 39.9, utils.RoundCoord(39.901, 1))
	assert.Equal(t, 40.0, utils.RoundCoord(39.998, 1))
	assert.Equal(t, 33.0, utils.RoundCoord(32.999, 1))
	assert.Equal(t, 32.85, utils.RoundCoord(32.851, 2))
	assert.Equal(t, -39.9, utils.RoundCoord(-39.901, 1))
}
