package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductBaselinePrice(t *testing.T) {
	p := Product{RegularPrice: decimal.NewFromInt(100)}
	assert.True(t, p.BaselinePrice().Equal(decimal.NewFromInt(100)))

	p.SalePrice = decimal.NewNullDecimal(decimal.NewFromInt(80))
	assert.True(t, p.BaselinePrice().Equal(decimal.NewFromInt(80)))
}

func TestEventHasDiscountRule(t *testing.T) {
	e := Event{}
	assert.False(t, e.HasDiscountRule())

	e = Event{DiscountKind: DiscountKindPercentage, DiscountValue: decimal.NewFromInt(20)}
	assert.True(t, e.HasDiscountRule())

	// A kind with no positive value is not a rule
	e = Event{DiscountKind: DiscountKindPercentage}
	assert.False(t, e.HasDiscountRule())

	// Free shipping carries no value by definition
	e = Event{DiscountKind: DiscountKindFreeShipping}
	assert.True(t, e.HasDiscountRule())
}

func TestEventIsLive(t *testing.T) {
	now := time.Date(2026, time.July, 4, 12, 0, 0, 0, time.UTC)
	e := Event{
		StartingDate: now.Add(-time.Hour),
		EndingDate:   now.Add(time.Hour),
		IsActive:     true,
	}

	assert.True(t, e.IsLive(now))
	assert.True(t, e.IsLive(e.StartingDate))
	assert.True(t, e.IsLive(e.EndingDate))
	assert.False(t, e.IsLive(e.StartingDate.Add(-time.Second)))
	assert.False(t, e.IsLive(e.EndingDate.Add(time.Second)))

	// Past-dated events stay disabled without any background sweeper
	e.IsActive = false
	assert.False(t, e.IsLive(now))
}
