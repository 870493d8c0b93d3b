package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pricing record sources
const (
	PricingSourceEvent = "EVENT"
)

// ProductPricing is an append-only audit row written every time the event
// pricing engine computes a product's price. Rows are never updated in place
// except to close their validity window (ValidUntil stamped) when the
// product leaves the event; they are never deleted.
type ProductPricing struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"uniqueIndex;not null" json:"reference"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`

	BasePrice       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"base_price"`
	DiscountedPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discounted_price"`
	DiscountAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount_amount"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2)" json:"discount_percent"`

	Source   string `gorm:"not null;index" json:"source"`
	SourceID uint   `gorm:"not null;index" json:"source_id"`
	Reason   string `json:"reason"`

	ValidFrom  time.Time  `gorm:"not null" json:"valid_from"`
	ValidUntil *time.Time `json:"valid_until"`
	IsActive   bool       `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
}
