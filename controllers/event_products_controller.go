package controllers

import (
	"errors"
	"time"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetEventProductsRequest represents the request body for replacing an
// event's product set
type SetEventProductsRequest struct {
	ProductIDs []uint `json:"product_ids" binding:"required"`
}

// SetEventProducts replaces an event's enrolled product set. Detach-and-reset
// and attach-and-reprice run in one transaction, so no product is ever
// visible detached with event pricing or attached with baseline pricing.
func SetEventProducts(c *gin.Context) {
	utils.LogInfo("SetEventProducts called")

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

	var req SetEventProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for event %s: %v", eventID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Replacing product set of event %s with %d products", eventID, len(req.ProductIDs))

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		event, found := findOwnedEvent(c, tx, seller, eventID)
		if !found {
			return errHandled
		}

		now := time.Now()
		if err := utils.DetachAllProductsFromEvent(tx, event.ID, now); err != nil {
			return err
		}
		return utils.AttachProductsToEvent(tx, event, req.ProductIDs, now)
	})
	if err != nil {
		if errors.Is(err, errHandled) {
			return
		}
		utils.LogError("Failed to set products for event %s: %v", eventID, err)
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Successfully replaced product set for event %s", eventID)
	utils.Success(c, "Event products updated successfully", gin.H{
		"event_id":    eventID,
		"product_ids": req.ProductIDs,
	})
}
