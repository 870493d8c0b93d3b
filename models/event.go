package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Event types
const (
	EventTypeFlashSale  = "FLASH_SALE"
	EventTypeSeasonal   = "SEASONAL"
	EventTypeClearance  = "CLEARANCE"
	EventTypeNewArrival = "NEW_ARRIVAL"
)

// Event is a time-boxed promotional campaign owned by a shop.
//
// The event-level rule (DiscountKind/DiscountValue) is optional; a product
// enrolled in an event with no rule and no override keeps its regular price.
// Expiry is evaluated lazily by comparing EndingDate at read time; nothing
// flips IsActive when the clock passes the end date.
type Event struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	EventType   string `gorm:"not null" json:"event_type"`
	ShopID      uint   `gorm:"not null;index" json:"shop_id"`
	Shop        Shop   `json:"shop,omitempty" gorm:"foreignKey:ShopID"`

	DiscountKind       string          `json:"discount_kind"`
	DiscountValue      decimal.Decimal `gorm:"type:numeric(12,2)" json:"discount_value"`
	MaxDiscount        decimal.Decimal `gorm:"type:numeric(12,2)" json:"max_discount"`
	MinimumOrderAmount decimal.Decimal `gorm:"type:numeric(12,2)" json:"minimum_order_amount"`

	StartingDate time.Time `gorm:"not null" json:"starting_date"`
	EndingDate   time.Time `gorm:"not null" json:"ending_date"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`

	Views  int `json:"views" gorm:"default:0"`
	Clicks int `json:"clicks" gorm:"default:0"`

	Products         []Product              `json:"products,omitempty" gorm:"foreignKey:EventID"`
	ProductDiscounts []EventProductDiscount `json:"product_discounts,omitempty" gorm:"foreignKey:EventID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasDiscountRule reports whether the event carries its own discount rule.
func (e *Event) HasDiscountRule() bool {
	return e.DiscountKind != "" && (e.DiscountValue.IsPositive() || e.DiscountKind == DiscountKindFreeShipping)
}

// IsLive reports whether the event should be treated as running at t.
func (e *Event) IsLive(t time.Time) bool {
	return e.IsActive && !t.Before(e.StartingDate) && !t.After(e.EndingDate)
}

// EventProductDiscount is a per-product override inside an event. When
// present and active it supersedes the event-level rule for that product.
// A set SpecialPrice takes precedence over Kind/Value on the same row.
type EventProductDiscount struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	EventID   uint `gorm:"not null;uniqueIndex:idx_event_product_discounts_event_product" json:"event_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_event_product_discounts_event_product" json:"product_id"`

	SpecialPrice decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"special_price"`
	Kind         string              `json:"kind"`
	Value        decimal.Decimal     `gorm:"type:numeric(12,2)" json:"value"`
	MaxDiscount  decimal.Decimal     `gorm:"type:numeric(12,2)" json:"max_discount"`

	MinPurchaseQty int  `json:"min_purchase_qty"`
	MaxPurchaseQty int  `json:"max_purchase_qty"`
	IsActive       bool `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
