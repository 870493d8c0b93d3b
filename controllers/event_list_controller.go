package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/models"
	"github.com/Devika-314/CraftSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListEvents returns events, paginated. Whether an event is live is decided
// lazily against its window at read time; nothing sweeps expired events.
func ListEvents(c *gin.Context) {
	utils.LogInfo("ListEvents called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Event{})

	if shopID := c.Query("shop_id"); shopID != "" {
		query = query.Where("shop_id = ?", shopID)
	}
	if eventType := c.Query("event_type"); eventType != "" {
		if err := utils.ValidateEventType(eventType); err != nil {
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		query = query.Where("event_type = ?", eventType)
	}
	if c.Query("live") == "true" {
		now := time.Now()
		query = query.Where("is_active = ? AND starting_date <= ? AND ending_date >= ?", true, now, now)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count events: %v", err)
		utils.InternalServerError(c, "Failed to count events", nil)
		return
	}
	pagination.SetTotal(total)

	var events []models.Event
	if err := query.Order("starting_date desc").Offset(pagination.Offset).Limit(pagination.Limit).Find(&events).Error; err != nil {
		utils.LogError("Failed to fetch events: %v", err)
		utils.InternalServerError(c, "Failed to fetch events", nil)
		return
	}
	utils.LogInfo("Retrieved %d events out of %d total", len(events), total)

	formatted := make([]gin.H, 0, len(events))
	for i := range events {
		formatted = append(formatted, formatEvent(&events[i]))
	}

	utils.Success(c, "Events retrieved successfully", gin.H{
		"events":     formatted,
		"pagination": pagination.Meta(),
	})
}

// GetEvent returns one event with its enrolled products and overrides, and
// bumps the view counter
func GetEvent(c *gin.Context) {
	utils.LogInfo("GetEvent called")

	eventID := c.Param("id")
	var event models.Event
	err := config.DB.Preload("Products").Preload("ProductDiscounts").First(&event, "id = ?", eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Event not found with ID: %s", eventID)
			utils.NotFound(c, "Event not found")
			return
		}
		utils.LogError("Failed to load event %s: %v", eventID, err)
		utils.InternalServerError(c, "Failed to load event", nil)
		return
	}

	if err := config.DB.Model(&event).UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		utils.LogError("Failed to bump view count for event %d: %v", event.ID, err)
	}

	products := make([]gin.H, 0, len(event.Products))
	for i := range event.Products {
		products = append(products, formatProductSummary(&event.Products[i]))
	}

	overrides := make([]gin.H, 0, len(event.ProductDiscounts))
	for _, override := range event.ProductDiscounts {
		entry := gin.H{
			"product_id":   override.ProductID,
			"kind":         override.Kind,
			"value":        override.Value,
			"max_discount": override.MaxDiscount,
			"is_active":    override.IsActive,
		}
		if override.SpecialPrice.Valid {
			entry["special_price"] = override.SpecialPrice.Decimal
		}
		if override.MinPurchaseQty > 0 {
			entry["min_purchase_qty"] = override.MinPurchaseQty
		}
		if override.MaxPurchaseQty > 0 {
			entry["max_purchase_qty"] = override.MaxPurchaseQty
		}
		overrides = append(overrides, entry)
	}

	response := formatEvent(&event)
	response["products"] = products
	response["product_discounts"] = overrides

	utils.LogInfo("Successfully retrieved event %d with %d products", event.ID, len(products))
	utils.Success(c, "Event retrieved successfully", gin.H{
		"event": response,
	})
}

// TrackEventClick bumps the click counter of an event
func TrackEventClick(c *gin.Context) {
	eventID := c.Param("id")
	res := config.DB.Model(&models.Event{}).Where("id = ?", eventID).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))
	if res.Error != nil {
		utils.LogError("Failed to track click for event %s: %v", eventID, res.Error)
		utils.InternalServerError(c, "Failed to track click", nil)
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Event not found")
		return
	}
	utils.Success(c, "Click recorded", gin.H{"event_id": fmt.Sprint(eventID)})
}
