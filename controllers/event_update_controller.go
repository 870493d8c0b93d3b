package controllers

import (
	"errors"
	"time"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/models"
	"github.com/Devika-314/CraftSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UpdateEventRequest represents the request body for patching an event.
// Omitted fields keep their current values.
type UpdateEventRequest struct {
	Title              string                        `json:"title"`
	Description        *string                       `json:"description"`
	EventType          string                        `json:"event_type"`
	DiscountKind       *string                       `json:"discount_kind"`
	DiscountValue      *float64                      `json:"discount_value"`
	MaxDiscount        *float64                      `json:"max_discount"`
	MinimumOrderAmount *float64                      `json:"minimum_order_amount"`
	StartingDate       *time.Time                    `json:"starting_date"`
	EndingDate         *time.Time                    `json:"ending_date"`
	IsActive           *bool                         `json:"is_active"`
	ProductDiscounts   []EventProductDiscountRequest `json:"product_discounts"`
}

// findOwnedEvent loads an event and checks the caller owns its shop
func findOwnedEvent(c *gin.Context, tx *gorm.DB, user models.User, eventID string) (*models.Event, bool) {
	var event models.Event
	if err := tx.Preload("Shop").First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Event not found with ID: %s", eventID)
			utils.NotFound(c, "Event not found")
			return nil, false
		}
		utils.LogError("Failed to load event %s: %v", eventID, err)
		utils.InternalServerError(c, "Failed to load event", nil)
		return nil, false
	}
	if event.Shop.SellerID != user.ID && !user.IsAdmin {
		utils.LogError("User %d attempted access to event %d of shop %d", user.ID, event.ID, event.ShopID)
		utils.Forbidden(c, "You do not own this event")
		return nil, false
	}
	return &event, true
}

// UpdateEvent patches an event's attributes, rule or overrides and reprices
// the event's current product set when anything price-relevant changed
func UpdateEvent(c *gin.Context) {
	utils.LogInfo("UpdateEvent called")

	seller, ok := requireSeller(c)
	if !ok {
		return
	}

	eventID := c.Param("id")
	if eventID == "" {
		utils.LogError("Missing event identifier")
		utils.BadRequest(c, "Event identifier is required", nil)
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for event %s: %v", eventID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Processing update for event ID: %s", eventID)

	if req.EventType != "" {
		if err := utils.ValidateEventType(req.EventType); err != nil {
			utils.LogError("Invalid event type %s: %v", req.EventType, err)
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

	var event *models.Event
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var found bool
		event, found = findOwnedEvent(c, tx, seller, eventID)
		if !found {
			return errHandled
		}

		// Date validation runs against the merged values: an update that
		// omits a date keeps the stored one.
		starting := event.StartingDate
		if req.StartingDate != nil {
			starting = *req.StartingDate
		}
		ending := event.EndingDate
		if req.EndingDate != nil {
			ending = *req.EndingDate
		}
		if !ending.After(starting) {
			return utils.ValidationFailedError("Ending date must be after starting date")
		}

		kind := event.DiscountKind
		if req.DiscountKind != nil {
			kind = *req.DiscountKind
		}
		value := event.DiscountValue
		if req.DiscountValue != nil {
			value = decimal.NewFromFloat(*req.DiscountValue)
		}
		maxDiscount := event.MaxDiscount
		if req.MaxDiscount != nil {
			maxDiscount = decimal.NewFromFloat(*req.MaxDiscount)
		}
		if kind != "" {
			if err := utils.ValidateDiscountRule(kind, value, maxDiscount); err != nil {
				return utils.ValidationFailedError(err.Error())
			}
		}

		repriceNeeded := req.StartingDate != nil || req.EndingDate != nil ||
			req.DiscountKind != nil || req.DiscountValue != nil || req.MaxDiscount != nil ||
			req.IsActive != nil || len(req.ProductDiscounts) > 0

		updates := map[string]interface{}{
			"starting_date":  starting,
			"ending_date":    ending,
			"discount_kind":  kind,
			"discount_value": value,
			"max_discount":   maxDiscount,
			"updated_at":     time.Now(),
		}
		if req.Title != "" {
			updates["title"] = req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.EventType != "" {
			updates["event_type"] = req.EventType
		}
		if req.MinimumOrderAmount != nil {
			updates["minimum_order_amount"] = decimal.NewFromFloat(*req.MinimumOrderAmount)
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}

		if err := tx.Model(event).Updates(updates).Error; err != nil {
			return utils.InternalError("Failed to update event", err)
		}

		for _, overrideReq := range req.ProductDiscounts {
			override := buildOverride(event.ID, overrideReq)
			// One override per (event, product): replace in place
			if err := tx.Where("event_id = ? AND product_id = ?", event.ID, overrideReq.ProductID).
				Delete(&models.EventProductDiscount{}).Error; err != nil {
				return utils.InternalError("Failed to replace product discount override", err)
			}
			if err := tx.Create(&override).Error; err != nil {
				return utils.InternalError("Failed to create product discount override", err)
			}
		}

		if repriceNeeded {
			return utils.RecomputeEventPricing(tx, event.ID, time.Now())
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errHandled) {
			return
		}
		utils.LogError("Failed to update event %s: %v", eventID, err)
		utils.RespondError(c, err)
		return
	}

	var updated models.Event
	if err := config.DB.First(&updated, event.ID).Error; err != nil {
		utils.LogError("Failed to reload event %d: %v", event.ID, err)
		utils.InternalServerError(c, "Failed to reload event", nil)
		return
	}

	utils.LogInfo("Successfully updated event with ID: %d", updated.ID)
	utils.Success(c, "Event updated successfully", gin.H{
		"event": formatEvent(&updated),
	})
}
