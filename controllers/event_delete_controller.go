package controllers

import (
	"errors"
	"time"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/models"
	"github.com/Devika-314/CraftSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DeleteEvent removes an event. Every enrolled product is reset to its
// baseline price first, the event's pricing records are closed rather than
// deleted, and its per-product overrides are removed with the event row.
func DeleteEvent(c *gin.Context) {
	utils.LogInfo("DeleteEvent called")

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
	utils.LogInfo("Processing deletion for event ID: %s", eventID)

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		event, found := findOwnedEvent(c, tx, seller, eventID)
		if !found {
			return errHandled
		}

		now := time.Now()
		if err := utils.DetachAllProductsFromEvent(tx, event.ID, now); err != nil {
			return err
		}

		if err := tx.Where("event_id = ?", event.ID).Delete(&models.EventProductDiscount{}).Error; err != nil {
			return utils.InternalError("Failed to remove product discount overrides", err)
		}

		if err := tx.Delete(event).Error; err != nil {
			return utils.InternalError("Failed to delete event", err)
		}

		utils.LogInfo("Deleted event %d and reset its product pricing", event.ID)
		return nil
	})
	if err != nil {
		if errors.Is(err, errHandled) {
			return
		}
		utils.LogError("Failed to delete event %s: %v", eventID, err)
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Event deleted successfully", nil)
}
