package utils

import (
	"strings"
	"time"

	"github.com/Devika-314/CraftSphere/models"
	gocache "github.com/patrickmn/go-cache"
)

// Read-path cache for discount code lookups. The validator may be polled on
// every cart change, so code rows are cached briefly; the redemption
// transaction never reads through this cache, and every coupon mutation
// invalidates its entry.
var discountCodeCache = gocache.New(30*time.Second, time.Minute)

func discountCodeCacheKey(code string) string {
	return "discount_code:" + strings.ToUpper(code)
}

// CachedDiscountCode returns a cached code row, if present
func CachedDiscountCode(code string) (*models.DiscountCode, bool) {
	if v, ok := discountCodeCache.Get(discountCodeCacheKey(code)); ok {
		dc := v.(models.DiscountCode)
		return &dc, true
	}
	return nil, false
}

// CacheDiscountCode stores a code row for read-path lookups
func CacheDiscountCode(dc models.DiscountCode) {
	discountCodeCache.SetDefault(discountCodeCacheKey(dc.Code), dc)
}

// InvalidateDiscountCode drops a code row from the cache
func InvalidateDiscountCode(code string) {
	discountCodeCache.Delete(discountCodeCacheKey(code))
}
