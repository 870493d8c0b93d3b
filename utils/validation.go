package utils

import (
	"fmt"
	"regexp"
	"time"

	"github.com/Devika-314/CraftSphere/models"
	"github.com/shopspring/decimal"
)

var discountCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// ValidateDiscountCodeFormat checks that a redemption code is uppercase
// alphanumeric, 3-20 characters. Codes are stored upper-cased, so the caller
// is expected to have upper-cased the input already.
func ValidateDiscountCodeFormat(code string) error {
	if !discountCodeRegex.MatchString(code) {
		return fmt.Errorf("code must be 3-20 uppercase letters or digits")
	}
	return nil
}

// ValidateDiscountRule checks kind/value/cap consistency for both discount
// codes and event rules.
func ValidateDiscountRule(kind string, value, maxDiscount decimal.Decimal) error {
	switch kind {
	case models.DiscountKindPercentage:
		if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("percentage value must be between 0 and 100")
		}
	case models.DiscountKindFixedAmount:
		if !value.IsPositive() {
			return fmt.Errorf("fixed amount value must be greater than 0")
		}
		if maxDiscount.IsPositive() {
			return fmt.Errorf("max discount cap is only valid for percentage discounts")
		}
	case models.DiscountKindFreeShipping:
		if !value.IsZero() {
			return fmt.Errorf("free shipping discounts must have a zero value")
		}
	default:
		return fmt.Errorf("unknown discount kind: %s", kind)
	}
	if maxDiscount.IsNegative() {
		return fmt.Errorf("max discount cannot be negative")
	}
	return nil
}

// ValidateEventType checks the event type against the known set
func ValidateEventType(eventType string) error {
	switch eventType {
	case models.EventTypeFlashSale, models.EventTypeSeasonal, models.EventTypeClearance, models.EventTypeNewArrival:
		return nil
	}
	return fmt.Errorf("unknown event type: %s", eventType)
}

// ValidateDateWindow checks that the end of a validity window comes strictly
// after its start. A nil end means the window is open-ended.
func ValidateDateWindow(start time.Time, end *time.Time) error {
	if end != nil && !end.After(start) {
		return fmt.Errorf("end date must be after start date")
	}
	return nil
}

// ValidatePrice checks that a monetary amount is positive
func ValidatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("price must be greater than 0")
	}
	return nil
}

// ValidateStringLength checks that a string falls within the given bounds
func ValidateStringLength(str string, min, max int) error {
	if len(str) < min || len(str) > max {
		return fmt.Errorf("length must be between %d and %d characters", min, max)
	}
	return nil
}
