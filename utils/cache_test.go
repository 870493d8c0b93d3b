package utils

import (
	"testing"

	"github.com/Devika-314/CraftSphere/models"
	"github.com/stretchr/testify/assert"
)

func TestDiscountCodeCacheRoundTrip(t *testing.T) {
	dc := models.DiscountCode{ID: 42, Code: "CACHED10", Kind: models.DiscountKindPercentage, Value: d("10")}
	CacheDiscountCode(dc)

	got, ok := CachedDiscountCode("CACHED10")
	assert.True(t, ok)
	assert.Equal(t, uint(42), got.ID)

	// Lookups are case-insensitive, matching code storage
	got, ok = CachedDiscountCode("cached10")
	assert.True(t, ok)
	assert.Equal(t, "CACHED10", got.Code)

	InvalidateDiscountCode("cached10")
	_, ok = CachedDiscountCode("CACHED10")
	assert.False(t, ok)
}

func TestCachedDiscountCodeMiss(t *testing.T) {
	got, ok := CachedDiscountCode("NEVERSTORED")
	assert.False(t, ok)
	assert.Nil(t, got)
}
