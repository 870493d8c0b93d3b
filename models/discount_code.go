package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Discount kinds for both codes and event rules
const (
	DiscountKindPercentage   = "PERCENTAGE"
	DiscountKindFixedAmount  = "FIXED_AMOUNT"
	DiscountKindFreeShipping = "FREE_SHIPPING"
)

// DiscountCode is a shop-scoped promotional code.
//
// Limits use zero as "no limit". CurrentUsageCount only moves forward: it is
// incremented by the redemption transaction and never decremented by normal
// operation.
type DiscountCode struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	Code               string          `gorm:"uniqueIndex:idx_discount_codes_code;not null" json:"code"`
	Kind               string          `gorm:"not null" json:"kind"`
	Value              decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"value"`
	MaxDiscount        decimal.Decimal `gorm:"type:numeric(12,2)" json:"max_discount"`
	MinimumOrderAmount decimal.Decimal `gorm:"type:numeric(12,2)" json:"minimum_order_amount"`

	ShopID   uint `gorm:"not null;index" json:"shop_id"`
	Shop     Shop `json:"shop,omitempty" gorm:"foreignKey:ShopID"`
	SellerID uint `gorm:"not null;index" json:"seller_id"`

	ApplicableToAll    bool          `json:"applicable_to_all" gorm:"default:true"`
	ProductIDs         pq.Int64Array `gorm:"type:bigint[]" json:"product_ids"`
	CategoryIDs        pq.Int64Array `gorm:"type:bigint[]" json:"category_ids"`
	ExcludedProductIDs pq.Int64Array `gorm:"type:bigint[]" json:"excluded_product_ids"`

	UsageLimit        int `json:"usage_limit"`
	PerUserLimit      int `json:"per_user_limit"`
	CurrentUsageCount int `json:"current_usage_count" gorm:"default:0"`

	ValidFrom  time.Time  `gorm:"not null" json:"valid_from"`
	ValidUntil *time.Time `json:"valid_until"`
	IsActive   bool       `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// DiscountUsage is an immutable audit row recording one redemption.
// The unique (discount_code_id, order_id) index is the idempotency key: a
// code can be applied to an order at most once, ever.
type DiscountUsage struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	DiscountCodeID uint            `gorm:"not null;uniqueIndex:idx_discount_usages_code_order" json:"discount_code_id"`
	OrderID        uint            `gorm:"not null;uniqueIndex:idx_discount_usages_code_order" json:"order_id"`
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount_amount"`
	UsedAt         time.Time       `gorm:"not null" json:"used_at"`
}
