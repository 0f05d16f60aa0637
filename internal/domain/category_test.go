package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/provider-discovery/internal/domain"
)

func TestNormalizeCategory(t *testing.T) {
	t.Run("empty token means no filter", func(t *testing.T) {
		match := domain.NormalizeCategory("")
		assert.True(t, match.IsZero())

		match = domain.NormalizeCategory("   ")
		assert.True(t, match.IsZero())
	})

	t.Run("main category passes through case-insensitively", func(t *testing.T) {
		assert.Equal(t, domain.MainTypeRescue, domain.NormalizeCategory("RESCUE").MainType)
		assert.Equal(t, domain.MainTypeFreight, domain.NormalizeCategory("freight").MainType)
		assert.Equal(t, domain.MainTypePassenger, domain.NormalizeCategory("Passenger").MainType)
	})

	t.Run("synonyms normalize to canonical main type", func(t *testing.T) {
		assert.Equal(t, domain.MainTypeRescue, domain.NormalizeCategory("crane").MainType)
		assert.Equal(t, domain.MainTypeRescue, domain.NormalizeCategory("recovery").MainType)
		assert.Equal(t, domain.MainTypeRescue, domain.NormalizeCategory("cekici").MainType)
		assert.Equal(t, domain.MainTypeFreight, domain.NormalizeCategory("nakliye").MainType)
		assert.Equal(t, domain.MainTypeCharge, domain.NormalizeCategory("sarj").MainType)
	})

	t.Run("known sub type matches exactly", func(t *testing.T) {
		match := domain.NormalizeCategory("frigorifik")
		assert.Equal(t, "frigorifik", match.SubType)
		assert.Empty(t, match.MainType)
		assert.Empty(t, match.Substring)
	})

	t.Run("unknown token falls back to substring match", func(t *testing.T) {
		match := domain.NormalizeCategory("HeavyDuty")
		assert.Equal(t, "heavyduty", match.Substring)
		assert.Empty(t, match.MainType)
		assert.Empty(t, match.SubType)
	})
}

func TestIsValidMainType(t *testing.T) {
	assert.True(t, domain.IsValidMainType("RESCUE"))
	assert.True(t, domain.IsValidMainType("CHARGE"))
	assert.False(t, domain.IsValidMainType("rescue")) // canonical form is uppercase
	assert.False(t, domain.IsValidMainType("UNKNOWN"))
}
