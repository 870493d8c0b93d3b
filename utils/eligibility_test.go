package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleCart() []LineItem {
	return []LineItem{
		{ProductID: 1, CategoryID: 10, Quantity: 2, Price: d("50")},  // 100
		{ProductID: 2, CategoryID: 20, Quantity: 1, Price: d("80")},  // 80
		{ProductID: 3, CategoryID: 10, Quantity: 3, Price: d("10")},  // 30
		{ProductID: 4, CategoryID: 0, Quantity: 1, Price: d("5.50")}, // 5.50, uncategorized
	}
}

func TestFilterEligibleItemsApplicableToAll(t *testing.T) {
	scope := DiscountScope{ApplicableToAll: true}

	eligible, subtotal := FilterEligibleItems(scope, sampleCart())
	assert.Len(t, eligible, 4)
	assert.True(t, subtotal.Equal(d("215.50")), "got %s", subtotal)
}

func TestFilterEligibleItemsExclusionWinsOverAll(t *testing.T) {
	scope := DiscountScope{
		ApplicableToAll:    true,
		ExcludedProductIDs: []int64{2},
	}

	eligible, subtotal := FilterEligibleItems(scope, sampleCart())
	assert.Len(t, eligible, 3)
	assert.True(t, subtotal.Equal(d("135.50")), "got %s", subtotal)
}

func TestFilterEligibleItemsExclusionWinsOverAllowList(t *testing.T) {
	// Product 1 is both allowed and excluded; exclusion is checked first
	scope := DiscountScope{
		ProductIDs:         []int64{1, 3},
		ExcludedProductIDs: []int64{1},
	}

	eligible, subtotal := FilterEligibleItems(scope, sampleCart())
	assert.Len(t, eligible, 1)
	assert.Equal(t, uint(3), eligible[0].ProductID)
	assert.True(t, subtotal.Equal(d("30")))
}

func TestFilterEligibleItemsBothListsMustMatch(t *testing.T) {
	// Product 2 passes the product list but sits in category 20
	scope := DiscountScope{
		ProductIDs:  []int64{1, 2},
		CategoryIDs: []int64{10},
	}

	eligible, subtotal := FilterEligibleItems(scope, sampleCart())
	assert.Len(t, eligible, 1)
	assert.Equal(t, uint(1), eligible[0].ProductID)
	assert.True(t, subtotal.Equal(d("100")))
}

func TestFilterEligibleItemsEmptyListIsPermissive(t *testing.T) {
	scope := DiscountScope{CategoryIDs: []int64{10}}

	eligible, _ := FilterEligibleItems(scope, sampleCart())
	// Products 1 and 3 match category 10; product 4 has no category and passes
	assert.Len(t, eligible, 3)

	ids := map[uint]bool{}
	for _, item := range eligible {
		ids[item.ProductID] = true
	}
	assert.True(t, ids[1] && ids[3] && ids[4])
}

func TestFilterEligibleItemsNoneEligible(t *testing.T) {
	scope := DiscountScope{ProductIDs: []int64{999}}

	eligible, subtotal := FilterEligibleItems(scope, sampleCart())
	assert.Empty(t, eligible)
	assert.True(t, subtotal.IsZero())
}

func TestCartTotal(t *testing.T) {
	assert.True(t, CartTotal(sampleCart()).Equal(d("215.50")))
	assert.True(t, CartTotal(nil).IsZero())
}
