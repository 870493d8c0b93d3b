package utils

import (
	"github.com/shopspring/decimal"
)

// LineItem is the slice of an order or cart the eligibility filter looks at.
type LineItem struct {
	ProductID  uint
	CategoryID uint
	Quantity   int
	Price      decimal.Decimal
}

// DiscountScope holds the allow/exclusion lists of a discount code.
type DiscountScope struct {
	ApplicableToAll    bool
	ProductIDs         []int64
	CategoryIDs        []int64
	ExcludedProductIDs []int64
}

func containsID(ids []int64, id uint) bool {
	for _, v := range ids {
		if v == int64(id) {
			return true
		}
	}
	return false
}

// FilterEligibleItems returns the line items a discount scope applies to and
// their subtotal.
//
// The exclusion list is checked first and always wins. With ApplicableToAll
// set, every non-excluded item is eligible. Otherwise both allow-lists must
// match independently, where an empty list is permissive; an item with no
// category passes the category check.
func FilterEligibleItems(scope DiscountScope, items []LineItem) ([]LineItem, decimal.Decimal) {
	var eligible []LineItem
	subtotal := decimal.Zero

	for _, item := range items {
		if containsID(scope.ExcludedProductIDs, item.ProductID) {
			continue
		}
		if !scope.ApplicableToAll {
			if len(scope.ProductIDs) > 0 && !containsID(scope.ProductIDs, item.ProductID) {
				continue
			}
			if len(scope.CategoryIDs) > 0 && item.CategoryID != 0 && !containsID(scope.CategoryIDs, item.CategoryID) {
				continue
			}
		}
		eligible = append(eligible, item)
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return eligible, subtotal
}

// CartTotal sums price x quantity over all items, with no eligibility
// filtering. The read-only validation path uses this full-cart total.
func CartTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
