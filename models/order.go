package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status constants
const (
	OrderStatusPending   = "Pending"
	OrderStatusPlaced    = "Placed"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ReferenceNumber string          `gorm:"uniqueIndex;not null" json:"reference_number"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	User            User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ShopID          uint            `gorm:"not null;index" json:"shop_id"`
	Shop            Shop            `json:"shop,omitempty" gorm:"foreignKey:ShopID"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	DiscountCodeID  *uint           `json:"discount_code_id,omitempty"`
	DiscountCode    string          `json:"discount_code,omitempty"`
	CouponDiscount  decimal.Decimal `gorm:"type:numeric(12,2)" json:"coupon_discount"`
	FinalTotal      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"final_total"`
	Status          string          `gorm:"not null" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	OrderItems      []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Product   Product         `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
}
