package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/Devika-314/CraftSphere/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WithinWindow reports whether t falls inside [from, until]. A nil until
// means the window never closes. Every expiry decision in the promotions
// engine goes through this check so lazy expiry behaves the same on every
// read path.
func WithinWindow(t, from time.Time, until *time.Time) bool {
	if t.Before(from) {
		return false
	}
	if until != nil && t.After(*until) {
		return false
	}
	return true
}

// RuleOf extracts the pricing rule from a discount code
func RuleOf(dc *models.DiscountCode) DiscountRule {
	return DiscountRule{
		Kind:        dc.Kind,
		Value:       dc.Value,
		MaxDiscount: dc.MaxDiscount,
	}
}

// ScopeOf extracts the eligibility scope from a discount code
func ScopeOf(dc *models.DiscountCode) DiscountScope {
	return DiscountScope{
		ApplicableToAll:    dc.ApplicableToAll,
		ProductIDs:         dc.ProductIDs,
		CategoryIDs:        dc.CategoryIDs,
		ExcludedProductIDs: dc.ExcludedProductIDs,
	}
}

// DiscountQuote is the outcome of validating a code against a cart or order.
type DiscountQuote struct {
	Code           *models.DiscountCode
	CartTotal      decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}

// CheckDiscountUsable runs the stateless usability checks of a loaded code:
// active flag, validity window, shop scope, global usage cap. Check order
// matches the validation path; the first failure wins.
func CheckDiscountUsable(dc *models.DiscountCode, shopID *uint, now time.Time) error {
	if !dc.IsActive {
		return InactiveError("This discount code is no longer active")
	}
	if !WithinWindow(now, dc.ValidFrom, dc.ValidUntil) {
		return ExpiredError("This discount code is outside its validity period")
	}
	if shopID != nil && *shopID != dc.ShopID {
		return ShopMismatchError("This discount code is not valid for this shop")
	}
	if dc.UsageLimit > 0 && dc.CurrentUsageCount >= dc.UsageLimit {
		return UsageLimitError("This discount code has reached its usage limit")
	}
	return nil
}

// FindDiscountCode loads a code row by its redemption string,
// case-insensitively. It does not consult the read-path cache, so it is safe
// to call inside the redemption transaction.
func FindDiscountCode(db *gorm.DB, code string) (*models.DiscountCode, error) {
	var dc models.DiscountCode
	if err := db.Where("code = ?", strings.ToUpper(code)).First(&dc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Discount code not found")
		}
		return nil, InternalError("Failed to look up discount code", err)
	}
	return &dc, nil
}

// ValidateDiscountCode is the read-only validation path used for live cart
// previews. It performs no writes and is safe to call repeatedly: the same
// inputs against unchanged state always produce the same quote.
//
// The full-cart total is used both for the minimum-order check and as the
// discount base; eligibility narrowing happens only on the order-level
// redemption path.
func ValidateDiscountCode(db *gorm.DB, code string, shopID *uint, items []LineItem, now time.Time) (*DiscountQuote, error) {
	dc, cached := CachedDiscountCode(code)
	if !cached {
		var err error
		dc, err = FindDiscountCode(db, code)
		if err != nil {
			return nil, err
		}
		CacheDiscountCode(*dc)
	}

	if err := CheckDiscountUsable(dc, shopID, now); err != nil {
		return nil, err
	}

	cartTotal := CartTotal(items)
	if dc.MinimumOrderAmount.IsPositive() && cartTotal.LessThan(dc.MinimumOrderAmount) {
		return nil, MinimumNotMetError("Cart total is below the minimum order amount for this code")
	}

	discountAmount := ComputeDiscount(cartTotal, RuleOf(dc))
	return &DiscountQuote{
		Code:           dc,
		CartTotal:      cartTotal,
		DiscountAmount: discountAmount,
		FinalAmount:    ApplyDiscount(cartTotal, discountAmount),
	}, nil
}

// OrderLineItems converts an order's persisted items into eligibility line
// items. Item prices are the prices recorded at order time, never the
// product's cached current price.
func OrderLineItems(order *models.Order) []LineItem {
	items := make([]LineItem, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, LineItem{
			ProductID:  item.ProductID,
			CategoryID: item.Product.CategoryID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}
	return items
}

// RedemptionResult reports a committed redemption.
type RedemptionResult struct {
	Code           *models.DiscountCode
	DiscountAmount decimal.Decimal
	OrderTotal     decimal.Decimal
	FinalAmount    decimal.Decimal
}

// RedeemDiscountCode executes the state-changing redemption protocol. It must
// be called inside a transaction; every check runs against the transaction's
// own reads, not state captured during any earlier preview, so a preview that
// succeeded minutes ago cannot smuggle a stale counter past the caps.
//
// On success exactly one usage row exists for (code, order), the code's
// usage counter has moved up by one, and the order carries the applied code.
// On any failure the transaction is rolled back by the caller and nothing is
// visible.
func RedeemDiscountCode(tx *gorm.DB, code string, order *models.Order, userID uint, now time.Time) (*RedemptionResult, error) {
	// An order takes at most one discount code, ever. Checked before any
	// per-code guard so a second, different code cannot overwrite the stamp
	// left by the first.
	if order.DiscountCodeID != nil {
		return nil, AlreadyAppliedError("A discount code has already been applied to this order")
	}

	// Fresh read of the code and its counters inside the transaction
	dc, err := FindDiscountCode(tx, code)
	if err != nil {
		return nil, err
	}

	if err := CheckDiscountUsable(dc, &order.ShopID, now); err != nil {
		return nil, err
	}

	if dc.PerUserLimit > 0 {
		var userUses int64
		if err := tx.Model(&models.DiscountUsage{}).
			Where("discount_code_id = ? AND user_id = ?", dc.ID, userID).
			Count(&userUses).Error; err != nil {
			return nil, InternalError("Failed to count previous redemptions", err)
		}
		if userUses >= int64(dc.PerUserLimit) {
			return nil, PerUserLimitError("You have already used this discount code the maximum number of times")
		}
	}

	// Idempotency guard: one usage row per (code, order), ever
	var existing models.DiscountUsage
	err = tx.Where("discount_code_id = ? AND order_id = ?", dc.ID, order.ID).First(&existing).Error
	if err == nil {
		return nil, AlreadyAppliedError("This discount code has already been applied to this order")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, InternalError("Failed to check existing redemptions", err)
	}

	lineItems := OrderLineItems(order)
	orderTotal := CartTotal(lineItems)
	if !orderTotal.IsPositive() {
		return nil, NotApplicableError("Order has no billable items")
	}

	// Minimum-order check mirrors the read path (full order total); the
	// discount base narrows to the eligible subtotal.
	if dc.MinimumOrderAmount.IsPositive() && orderTotal.LessThan(dc.MinimumOrderAmount) {
		return nil, MinimumNotMetError("Order total is below the minimum order amount for this code")
	}

	eligible, eligibleSubtotal := FilterEligibleItems(ScopeOf(dc), lineItems)
	if len(eligible) == 0 || !eligibleSubtotal.IsPositive() {
		return nil, NotApplicableError("This discount code does not apply to any items in this order")
	}

	discountAmount := ComputeDiscount(eligibleSubtotal, RuleOf(dc))

	// Conditional increment serializes concurrent redemptions on the counter
	// row. RowsAffected = 0 means another transaction took the last slot.
	res := tx.Model(&models.DiscountCode{}).
		Where("id = ? AND (usage_limit = 0 OR current_usage_count < usage_limit)", dc.ID).
		UpdateColumn("current_usage_count", gorm.Expr("current_usage_count + ?", 1))
	if res.Error != nil {
		return nil, InternalError("Failed to increment usage counter", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, UsageLimitError("This discount code has reached its usage limit")
	}

	usage := models.DiscountUsage{
		DiscountCodeID: dc.ID,
		OrderID:        order.ID,
		UserID:         userID,
		DiscountAmount: discountAmount,
		UsedAt:         now,
	}
	if err := tx.Create(&usage).Error; err != nil {
		// Unique index on (discount_code_id, order_id) closed a race
		if strings.Contains(err.Error(), "idx_discount_usages_code_order") {
			return nil, AlreadyAppliedError("This discount code has already been applied to this order")
		}
		return nil, InternalError("Failed to record discount usage", err)
	}

	finalAmount := ApplyDiscount(orderTotal, discountAmount)
	stamp := map[string]interface{}{
		"discount_code_id": dc.ID,
		"discount_code":    dc.Code,
		"coupon_discount":  discountAmount,
		"final_total":      finalAmount,
		"updated_at":       now,
	}
	if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(stamp).Error; err != nil {
		return nil, InternalError("Failed to stamp order with discount", err)
	}

	InvalidateDiscountCode(dc.Code)

	return &RedemptionResult{
		Code:           dc,
		DiscountAmount: discountAmount,
		OrderTotal:     orderTotal,
		FinalAmount:    finalAmount,
	}, nil
}
