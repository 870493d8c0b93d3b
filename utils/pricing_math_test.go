package utils

import (
	"testing"

	"github.com/Devika-314/CraftSphere/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(value string) decimal.Decimal {
	out, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return out
}

func TestComputeDiscountPercentage(t *testing.T) {
	rule := DiscountRule{Kind: models.DiscountKindPercentage, Value: d("20")}

	amount := ComputeDiscount(d("200"), rule)
	assert.True(t, amount.Equal(d("40")), "expected 40, got %s", amount)

	// Without a cap the discount is exactly base*value/100
	amount = ComputeDiscount(d("50"), rule)
	assert.True(t, amount.Equal(d("10")), "expected 10, got %s", amount)
}

func TestComputeDiscountPercentageWithCap(t *testing.T) {
	// SAVE20: 20% capped at 50 on a 200 cart
	save20 := DiscountRule{Kind: models.DiscountKindPercentage, Value: d("20"), MaxDiscount: d("50")}
	amount := ComputeDiscount(d("200"), save20)
	assert.True(t, amount.Equal(d("40")), "expected min(40,50)=40, got %s", amount)

	// HALF: 50% capped at 30 on a 200 cart
	half := DiscountRule{Kind: models.DiscountKindPercentage, Value: d("50"), MaxDiscount: d("30")}
	amount = ComputeDiscount(d("200"), half)
	assert.True(t, amount.Equal(d("30")), "expected cap 30, got %s", amount)
}

func TestComputeDiscountFixedAmount(t *testing.T) {
	rule := DiscountRule{Kind: models.DiscountKindFixedAmount, Value: d("25")}

	amount := ComputeDiscount(d("100"), rule)
	assert.True(t, amount.Equal(d("25")))

	// A fixed discount never exceeds the base it applies to
	amount = ComputeDiscount(d("10"), rule)
	assert.True(t, amount.Equal(d("10")), "expected clamp to base, got %s", amount)
}

func TestComputeDiscountFreeShipping(t *testing.T) {
	rule := DiscountRule{Kind: models.DiscountKindFreeShipping}
	for _, base := range []string{"0", "10", "99999.99"} {
		amount := ComputeDiscount(d(base), rule)
		assert.True(t, amount.IsZero(), "free shipping must discount 0, got %s on base %s", amount, base)
	}
}

func TestComputeDiscountUnknownKind(t *testing.T) {
	amount := ComputeDiscount(d("100"), DiscountRule{Kind: "MYSTERY", Value: d("10")})
	assert.True(t, amount.IsZero())
}

func TestApplyDiscountFloorsAtZero(t *testing.T) {
	assert.True(t, ApplyDiscount(d("100"), d("40")).Equal(d("60")))
	assert.True(t, ApplyDiscount(d("30"), d("40")).IsZero())
}

func TestDiscountPercentOf(t *testing.T) {
	percent := DiscountPercentOf(d("150"), d("50"))
	assert.True(t, percent.Equal(d("33.33")), "expected 33.33, got %s", percent)
	assert.True(t, DiscountPercentOf(d("0"), d("10")).IsZero())
}

func TestResolveDiscountSourcePrecedence(t *testing.T) {
	event := &models.Event{
		DiscountKind:  models.DiscountKindPercentage,
		DiscountValue: d("10"),
	}
	override := &models.EventProductDiscount{
		Kind:     models.DiscountKindPercentage,
		Value:    d("25"),
		IsActive: true,
	}

	// Active override beats the event-level rule
	source := ResolveDiscountSource(event, override)
	assert.Equal(t, SourceOverrideRule, source.Kind)
	assert.True(t, source.Rule.Value.Equal(d("25")))

	// A special price on the override beats its own kind/value
	override.SpecialPrice = decimal.NewNullDecimal(d("79.99"))
	source = ResolveDiscountSource(event, override)
	assert.Equal(t, SourceSpecialPrice, source.Kind)
	assert.True(t, source.SpecialPrice.Equal(d("79.99")))

	// Inactive override falls back to the event rule
	override.IsActive = false
	source = ResolveDiscountSource(event, override)
	assert.Equal(t, SourceEventRule, source.Kind)
	assert.True(t, source.Rule.Value.Equal(d("10")))

	// No override, no event rule: nothing applies
	source = ResolveDiscountSource(&models.Event{}, nil)
	assert.Equal(t, SourceNone, source.Kind)
}

func TestDiscountSourcePriceFor(t *testing.T) {
	// Special price is used directly, not derived by subtraction
	source := DiscountSource{Kind: SourceSpecialPrice, SpecialPrice: d("79.99")}
	price, amount := source.PriceFor(d("100"))
	assert.True(t, price.Equal(d("79.99")))
	assert.True(t, amount.Equal(d("20.01")))

	// Special price above the regular price never yields a negative discount
	source = DiscountSource{Kind: SourceSpecialPrice, SpecialPrice: d("120")}
	price, amount = source.PriceFor(d("100"))
	assert.True(t, price.Equal(d("120")))
	assert.True(t, amount.IsZero())

	// Event rule path
	source = DiscountSource{Kind: SourceEventRule, Rule: DiscountRule{
		Kind: models.DiscountKindPercentage, Value: d("30"),
	}}
	price, amount = source.PriceFor(d("200"))
	assert.True(t, price.Equal(d("140")))
	assert.True(t, amount.Equal(d("60")))

	// No source leaves the regular price untouched
	source = DiscountSource{Kind: SourceNone}
	price, amount = source.PriceFor(d("55.50"))
	assert.True(t, price.Equal(d("55.50")))
	assert.True(t, amount.IsZero())
}
