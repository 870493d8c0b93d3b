package utils

import (
	"testing"
	"time"

	"github.com/Devika-314/CraftSphere/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateDiscountCodeFormat(t *testing.T) {
	valid := []string{"SAVE20", "ABC", "A1B2C3D4E5F6G7H8I9J0", "2026"}
	for _, code := range valid {
		assert.NoError(t, ValidateDiscountCodeFormat(code), code)
	}

	invalid := []string{"", "AB", "save20", "SAVE 20", "SAVE-20", "TOOLONGTOBEADISCOUNTCODE"}
	for _, code := range invalid {
		assert.Error(t, ValidateDiscountCodeFormat(code), code)
	}
}

func TestValidateDiscountRule(t *testing.T) {
	assert.NoError(t, ValidateDiscountRule(models.DiscountKindPercentage, d("20"), d("50")))
	assert.NoError(t, ValidateDiscountRule(models.DiscountKindPercentage, d("100"), decimal.Zero))
	assert.Error(t, ValidateDiscountRule(models.DiscountKindPercentage, d("101"), decimal.Zero))
	assert.Error(t, ValidateDiscountRule(models.DiscountKindPercentage, d("-1"), decimal.Zero))

	assert.NoError(t, ValidateDiscountRule(models.DiscountKindFixedAmount, d("25"), decimal.Zero))
	assert.Error(t, ValidateDiscountRule(models.DiscountKindFixedAmount, decimal.Zero, decimal.Zero))
	// Caps only make sense for percentage discounts
	assert.Error(t, ValidateDiscountRule(models.DiscountKindFixedAmount, d("25"), d("10")))

	assert.NoError(t, ValidateDiscountRule(models.DiscountKindFreeShipping, decimal.Zero, decimal.Zero))
	assert.Error(t, ValidateDiscountRule(models.DiscountKindFreeShipping, d("5"), decimal.Zero))

	assert.Error(t, ValidateDiscountRule("BOGOF", d("1"), decimal.Zero))
}

func TestValidateEventType(t *testing.T) {
	for _, et := range []string{
		models.EventTypeFlashSale,
		models.EventTypeSeasonal,
		models.EventTypeClearance,
		models.EventTypeNewArrival,
	} {
		assert.NoError(t, ValidateEventType(et))
	}
	assert.Error(t, ValidateEventType("BLACK_FRIDAY"))
	assert.Error(t, ValidateEventType(""))
}

func TestValidateDateWindow(t *testing.T) {
	start := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	assert.NoError(t, ValidateDateWindow(start, &end))
	assert.NoError(t, ValidateDateWindow(start, nil))
	assert.Error(t, ValidateDateWindow(start, &start), "equal start and end is rejected")

	before := start.Add(-time.Hour)
	assert.Error(t, ValidateDateWindow(start, &before))
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice(d("0.01")))
	assert.Error(t, ValidatePrice(decimal.Zero))
	assert.Error(t, ValidatePrice(d("-5")))
}

func TestValidateStringLength(t *testing.T) {
	assert.NoError(t, ValidateStringLength("hello", 1, 10))
	assert.Error(t, ValidateStringLength("", 1, 10))
	assert.Error(t, ValidateStringLength("toolongvalue", 1, 10))
}
