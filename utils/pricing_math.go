package utils

import (
	"github.com/Devika-314/CraftSphere/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DiscountRule is the kind/value/cap triple shared by discount codes, event
// rules and per-product overrides. A zero MaxDiscount means no cap.
type DiscountRule struct {
	Kind        string
	Value       decimal.Decimal
	MaxDiscount decimal.Decimal
}

// ComputeDiscount returns the discount amount a rule yields on a monetary
// base. The result never exceeds the base and is never negative.
func ComputeDiscount(base decimal.Decimal, rule DiscountRule) decimal.Decimal {
	if base.IsNegative() {
		return decimal.Zero
	}
	var amount decimal.Decimal
	switch rule.Kind {
	case models.DiscountKindPercentage:
		amount = base.Mul(rule.Value).Div(hundred)
		if rule.MaxDiscount.IsPositive() && amount.GreaterThan(rule.MaxDiscount) {
			amount = rule.MaxDiscount
		}
	case models.DiscountKindFixedAmount:
		amount = rule.Value
	case models.DiscountKindFreeShipping:
		// Shipping cost is handled by a separate subsystem
		return decimal.Zero
	default:
		return decimal.Zero
	}
	if amount.GreaterThan(base) {
		amount = base
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount.Round(2)
}

// ApplyDiscount returns the price after subtracting a discount amount,
// floored at zero.
func ApplyDiscount(base, discountAmount decimal.Decimal) decimal.Decimal {
	result := base.Sub(discountAmount)
	if result.IsNegative() {
		return decimal.Zero
	}
	return result
}

// DiscountPercentOf returns the discount as a percentage of the base,
// rounded to two decimal places for display and audit rows.
func DiscountPercentOf(base, discountAmount decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return discountAmount.Mul(hundred).Div(base).Round(2)
}

// Discount source kinds, in increasing precedence order.
const (
	SourceNone         = "NONE"
	SourceEventRule    = "EVENT_RULE"
	SourceOverrideRule = "OVERRIDE_RULE"
	SourceSpecialPrice = "SPECIAL_PRICE"
)

// DiscountSource is the resolved origin of a product's event discount:
// an active per-product override beats the event-level rule, and a special
// price on the override beats its own kind/value.
type DiscountSource struct {
	Kind         string
	Rule         DiscountRule
	SpecialPrice decimal.Decimal
}

// ResolveDiscountSource decides which discount applies to a product enrolled
// in an event. Both the whole-event and the single-product recompute paths go
// through this one resolver.
func ResolveDiscountSource(event *models.Event, override *models.EventProductDiscount) DiscountSource {
	if override != nil && override.IsActive {
		if override.SpecialPrice.Valid {
			return DiscountSource{Kind: SourceSpecialPrice, SpecialPrice: override.SpecialPrice.Decimal}
		}
		if override.Kind != "" {
			return DiscountSource{Kind: SourceOverrideRule, Rule: DiscountRule{
				Kind:        override.Kind,
				Value:       override.Value,
				MaxDiscount: override.MaxDiscount,
			}}
		}
	}
	if event != nil && event.HasDiscountRule() {
		return DiscountSource{Kind: SourceEventRule, Rule: DiscountRule{
			Kind:        event.DiscountKind,
			Value:       event.DiscountValue,
			MaxDiscount: event.MaxDiscount,
		}}
	}
	return DiscountSource{Kind: SourceNone}
}

// PriceFor computes the discounted price and discount amount for a product
// with the given regular price under this source. For a special price the
// resulting price is the special price itself, not a derived subtraction.
func (s DiscountSource) PriceFor(regularPrice decimal.Decimal) (price, discountAmount decimal.Decimal) {
	switch s.Kind {
	case SourceSpecialPrice:
		price = s.SpecialPrice
		if price.IsNegative() {
			price = decimal.Zero
		}
		discountAmount = regularPrice.Sub(price)
		if discountAmount.IsNegative() {
			discountAmount = decimal.Zero
		}
		return price, discountAmount
	case SourceOverrideRule, SourceEventRule:
		discountAmount = ComputeDiscount(regularPrice, s.Rule)
		return ApplyDiscount(regularPrice, discountAmount), discountAmount
	default:
		return regularPrice, decimal.Zero
	}
}
