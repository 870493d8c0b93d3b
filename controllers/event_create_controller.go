package controllers

import (
	"time"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/models"
	"github.com/Devika-314/CraftSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EventProductDiscountRequest is a per-product override supplied at event
// creation or update
type EventProductDiscountRequest struct {
	ProductID      uint     `json:"product_id" binding:"required"`
	SpecialPrice   *float64 `json:"special_price" binding:"omitempty,gte=0"`
	Kind           string   `json:"kind" binding:"omitempty,oneof=PERCENTAGE FIXED_AMOUNT FREE_SHIPPING"`
	Value          float64  `json:"value"`
	MaxDiscount    float64  `json:"max_discount" binding:"omitempty,gt=0"`
	MinPurchaseQty int      `json:"min_purchase_qty" binding:"omitempty,gt=0"`
	MaxPurchaseQty int      `json:"max_purchase_qty" binding:"omitempty,gt=0"`
}

// CreateEventRequest represents the request body for creating a sale event
type CreateEventRequest struct {
	Title              string                        `json:"title" binding:"required"`
	Description        string                        `json:"description"`
	EventType          string                        `json:"event_type" binding:"required"`
	ShopID             uint                          `json:"shop_id" binding:"required"`
	DiscountKind       string                        `json:"discount_kind" binding:"omitempty,oneof=PERCENTAGE FIXED_AMOUNT FREE_SHIPPING"`
	DiscountValue      float64                       `json:"discount_value"`
	MaxDiscount        float64                       `json:"max_discount" binding:"omitempty,gt=0"`
	MinimumOrderAmount float64                       `json:"minimum_order_amount" binding:"omitempty,gt=0"`
	StartingDate       time.Time                     `json:"starting_date" binding:"required"`
	EndingDate         time.Time                     `json:"ending_date" binding:"required"`
	ProductIDs         []uint                        `json:"product_ids"`
	ProductDiscounts   []EventProductDiscountRequest `json:"product_discounts"`
}

// buildOverride converts an override request into a model row
func buildOverride(eventID uint, req EventProductDiscountRequest) models.EventProductDiscount {
	override := models.EventProductDiscount{
		EventID:        eventID,
		ProductID:      req.ProductID,
		Kind:           req.Kind,
		Value:          decimal.NewFromFloat(req.Value),
		MaxDiscount:    decimal.NewFromFloat(req.MaxDiscount),
		MinPurchaseQty: req.MinPurchaseQty,
		MaxPurchaseQty: req.MaxPurchaseQty,
		IsActive:       true,
	}
	if req.SpecialPrice != nil {
		override.SpecialPrice = decimal.NewNullDecimal(decimal.NewFromFloat(*req.SpecialPrice))
	}
	return override
}

// validateOverrideRequest checks one override's rule. A special price needs
// no kind/value; otherwise the kind/value pair must be a valid rule.
func validateOverrideRequest(req EventProductDiscountRequest) error {
	if req.SpecialPrice != nil {
		return nil
	}
	if req.Kind == "" {
		return utils.ValidationFailedError("Product discount needs either a special price or a discount kind")
	}
	return utils.ValidateDiscountRule(req.Kind, decimal.NewFromFloat(req.Value), decimal.NewFromFloat(req.MaxDiscount))
}

// CreateEvent creates a sale event, enrolls its initial product set and
// prices every enrolled product
func CreateEvent(c *gin.Context) {
	utils.LogInfo("CreateEvent called")

	seller, ok := requireSeller(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Processing event creation: %s for shop %d with %d products", req.Title, req.ShopID, len(req.ProductIDs))

	if err := utils.ValidateEventType(req.EventType); err != nil {
		utils.LogError("Invalid event type %s: %v", req.EventType, err)
		utils.ValidationError(c, err.Error(), nil)
		return
	}

	if !req.EndingDate.After(req.StartingDate) {
		utils.LogError("Invalid event window for %s: ending date not after starting date", req.Title)
		utils.ValidationError(c, "Ending date must be after starting date", nil)
		return
	}

	if req.DiscountKind != "" {
		if err := utils.ValidateDiscountRule(req.DiscountKind, decimal.NewFromFloat(req.DiscountValue), decimal.NewFromFloat(req.MaxDiscount)); err != nil {
			utils.LogError("Invalid event discount rule for %s: %v", req.Title, err)
			utils.ValidationError(c, err.Error(), nil)
			return
		}
	}

	for _, override := range req.ProductDiscounts {
		if err := validateOverrideRequest(override); err != nil {
			utils.LogError("Invalid product override for product %d: %v", override.ProductID, err)
			utils.RespondError(c, err)
			return
		}
	}

	if _, ok := requireOwnedShop(c, seller, req.ShopID); !ok {
		return
	}

	var event models.Event
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		event = models.Event{
			Title:              req.Title,
			Description:        req.Description,
			EventType:          req.EventType,
			ShopID:             req.ShopID,
			DiscountKind:       req.DiscountKind,
			DiscountValue:      decimal.NewFromFloat(req.DiscountValue),
			MaxDiscount:        decimal.NewFromFloat(req.MaxDiscount),
			MinimumOrderAmount: decimal.NewFromFloat(req.MinimumOrderAmount),
			StartingDate:       req.StartingDate,
			EndingDate:         req.EndingDate,
			IsActive:           true,
		}
		if err := tx.Create(&event).Error; err != nil {
			return utils.InternalError("Failed to create event", err)
		}

		for _, overrideReq := range req.ProductDiscounts {
			override := buildOverride(event.ID, overrideReq)
			if err := tx.Create(&override).Error; err != nil {
				return utils.InternalError("Failed to create product discount override", err)
			}
		}

		return utils.AttachProductsToEvent(tx, &event, req.ProductIDs, time.Now())
	})
	if err != nil {
		utils.LogError("Failed to create event %s: %v", req.Title, err)
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Successfully created event %s with ID: %d", event.Title, event.ID)
	utils.Created(c, "Event created successfully", gin.H{
		"event": formatEvent(&event),
	})
}

// formatEvent shapes an event row for API responses
func formatEvent(event *models.Event) gin.H {
	now := time.Now()
	return gin.H{
		"id":                   event.ID,
		"title":                event.Title,
		"description":          event.Description,
		"event_type":           event.EventType,
		"shop_id":              event.ShopID,
		"discount_kind":        event.DiscountKind,
		"discount_value":       event.DiscountValue,
		"max_discount":         event.MaxDiscount,
		"minimum_order_amount": event.MinimumOrderAmount,
		"starting_date":        event.StartingDate.Format("2006-01-02 15:04:05"),
		"ending_date":          event.EndingDate.Format("2006-01-02 15:04:05"),
		"is_active":            event.IsActive,
		"is_live":              event.IsLive(now),
		"is_expired":           now.After(event.EndingDate),
		"views":                event.Views,
		"clicks":               event.Clicks,
	}
}
