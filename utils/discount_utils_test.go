package utils

import (
	"testing"
	"time"

	"github.com/Devika-314/CraftSphere/models"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func usableCode() *models.DiscountCode {
	until := testNow.Add(24 * time.Hour)
	return &models.DiscountCode{
		ID:                 1,
		Code:               "SAVE20",
		Kind:               models.DiscountKindPercentage,
		Value:              d("20"),
		MaxDiscount:        d("50"),
		ShopID:             7,
		ApplicableToAll:    true,
		UsageLimit:         100,
		CurrentUsageCount:  10,
		ValidFrom:          testNow.Add(-24 * time.Hour),
		ValidUntil:         &until,
		IsActive:           true,
		MinimumOrderAmount: d("100"),
	}
}

func TestWithinWindow(t *testing.T) {
	from := testNow.Add(-time.Hour)
	until := testNow.Add(time.Hour)

	assert.True(t, WithinWindow(testNow, from, &until))
	assert.True(t, WithinWindow(from, from, &until), "window boundaries are inclusive")
	assert.True(t, WithinWindow(until, from, &until))
	assert.False(t, WithinWindow(from.Add(-time.Second), from, &until))
	assert.False(t, WithinWindow(until.Add(time.Second), from, &until))

	// Nil until means the window never closes
	assert.True(t, WithinWindow(testNow.Add(1000*time.Hour), from, nil))
	assert.False(t, WithinWindow(from.Add(-time.Second), from, nil))
}

func TestCheckDiscountUsableHappyPath(t *testing.T) {
	dc := usableCode()
	shopID := dc.ShopID
	assert.NoError(t, CheckDiscountUsable(dc, &shopID, testNow))

	// Nil shop scope skips the shop check
	assert.NoError(t, CheckDiscountUsable(dc, nil, testNow))
}

func TestCheckDiscountUsableInactive(t *testing.T) {
	dc := usableCode()
	dc.IsActive = false

	err := CheckDiscountUsable(dc, nil, testNow)
	assert.True(t, IsKind(err, KindInactive))
}

func TestCheckDiscountUsableExpired(t *testing.T) {
	dc := usableCode()

	// Before the window opens
	err := CheckDiscountUsable(dc, nil, dc.ValidFrom.Add(-time.Minute))
	assert.True(t, IsKind(err, KindExpired))

	// After it closes
	err = CheckDiscountUsable(dc, nil, dc.ValidUntil.Add(time.Minute))
	assert.True(t, IsKind(err, KindExpired))
}

func TestCheckDiscountUsableShopMismatch(t *testing.T) {
	dc := usableCode()
	other := dc.ShopID + 1

	err := CheckDiscountUsable(dc, &other, testNow)
	assert.True(t, IsKind(err, KindShopMismatch))
}

func TestCheckDiscountUsableUsageLimit(t *testing.T) {
	dc := usableCode()
	dc.CurrentUsageCount = dc.UsageLimit

	err := CheckDiscountUsable(dc, nil, testNow)
	assert.True(t, IsKind(err, KindUsageLimitReached))

	// Zero limit means unlimited
	dc.UsageLimit = 0
	dc.CurrentUsageCount = 1000000
	assert.NoError(t, CheckDiscountUsable(dc, nil, testNow))
}

func TestCheckDiscountUsableFirstFailureWins(t *testing.T) {
	// An inactive, expired code with the wrong shop reports inactive first
	dc := usableCode()
	dc.IsActive = false
	dc.ValidFrom = testNow.Add(time.Hour)
	other := dc.ShopID + 1

	err := CheckDiscountUsable(dc, &other, testNow)
	assert.True(t, IsKind(err, KindInactive))
}

func TestRuleOfAndScopeOf(t *testing.T) {
	dc := usableCode()
	dc.ApplicableToAll = false
	dc.ProductIDs = []int64{1, 2}
	dc.ExcludedProductIDs = []int64{3}

	rule := RuleOf(dc)
	assert.Equal(t, models.DiscountKindPercentage, rule.Kind)
	assert.True(t, rule.Value.Equal(d("20")))
	assert.True(t, rule.MaxDiscount.Equal(d("50")))

	scope := ScopeOf(dc)
	assert.False(t, scope.ApplicableToAll)
	assert.Equal(t, []int64{1, 2}, []int64(scope.ProductIDs))
	assert.Equal(t, []int64{3}, []int64(scope.ExcludedProductIDs))
}

func TestOrderLineItems(t *testing.T) {
	order := &models.Order{
		OrderItems: []models.OrderItem{
			{
				ProductID: 5,
				Product:   models.Product{CategoryID: 2, RegularPrice: d("999")},
				Quantity:  2,
				Price:     d("40"), // price captured at order time, not current
			},
		},
	}

	items := OrderLineItems(order)
	assert.Len(t, items, 1)
	assert.Equal(t, uint(5), items[0].ProductID)
	assert.Equal(t, uint(2), items[0].CategoryID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].Price.Equal(d("40")))
}
