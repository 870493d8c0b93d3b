package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User represents a buyer or seller account in the marketplace
type User struct {
	gorm.Model
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsBlocked   bool      `json:"is_blocked"`
	IsSeller    bool      `json:"is_seller" gorm:"default:false"`
	IsAdmin     bool      `json:"is_admin" gorm:"default:false"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// Shop represents a seller's storefront
type Shop struct {
	gorm.Model
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	SellerID    uint      `gorm:"not null;index" json:"seller_id"`
	Seller      User      `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	Products    []Product `json:"products,omitempty" gorm:"foreignKey:ShopID"`
}

// Category represents a product category
type Category struct {
	gorm.Model
	Name        string    `gorm:"uniqueIndex" json:"name"`
	Description string    `json:"description"`
	Products    []Product `json:"products,omitempty"`
	Blocked     bool      `json:"blocked" gorm:"default:false"`
}

// Product represents a listed item in a shop.
//
// RegularPrice is the seller's baseline and never changes as a result of
// promotions. CurrentPrice and IsOnDiscount are derived caches written only
// by the event pricing engine (or its reset path) and must not be used as
// input to any price calculation.
type Product struct {
	gorm.Model
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	ShopID       uint                `gorm:"not null;index" json:"shop_id"`
	Shop         Shop                `json:"shop,omitempty" gorm:"foreignKey:ShopID"`
	CategoryID   uint                `gorm:"index" json:"category_id"`
	Category     Category            `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	RegularPrice decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"regular_price"`
	SalePrice    decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"sale_price"`
	CurrentPrice decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"current_price"`
	IsOnDiscount bool                `json:"is_on_discount" gorm:"default:false"`
	EventID      *uint               `gorm:"index" json:"event_id,omitempty"`
	Stock        int                 `json:"stock"`
	ImageURL     string              `json:"image_url"`
	IsActive     bool                `json:"is_active" gorm:"default:true"`
	Views        int                 `json:"views" gorm:"default:0"`
}

// BaselinePrice returns the price a product falls back to when it is not
// enrolled in any event: the seller-set sale price if present, else the
// regular price.
func (p *Product) BaselinePrice() decimal.Decimal {
	if p.SalePrice.Valid {
		return p.SalePrice.Decimal
	}
	return p.RegularPrice
}
