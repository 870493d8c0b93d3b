package controllers

import (
	"fmt"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/models"
	"github.com/Devika-314/CraftSphere/utils"
	"github.com/gin-gonic/gin"
)

// ListDiscountCodes returns the discount codes of a shop, paginated
func ListDiscountCodes(c *gin.Context) {
	utils.LogInfo("ListDiscountCodes called")

	seller, ok := requireSeller(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	sortBy := c.DefaultQuery("sort_by", "created_at")
	order := c.DefaultQuery("order", "desc")
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	switch sortBy {
	case "created_at", "code", "valid_from", "current_usage_count":
	default:
		sortBy = "created_at"
	}
	utils.LogInfo("Fetching discount codes - page: %d, limit: %d, sort: %s %s", pagination.Page, pagination.Limit, sortBy, order)

	query := config.DB.Model(&models.DiscountCode{})
	if !seller.IsAdmin {
		query = query.Where("seller_id = ?", seller.ID)
	}
	if shopID := c.Query("shop_id"); shopID != "" {
		query = query.Where("shop_id = ?", shopID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count discount codes: %v", err)
		utils.InternalServerError(c, "Failed to count discount codes", nil)
		return
	}
	pagination.SetTotal(total)

	var codes []models.DiscountCode
	if err := query.Order(fmt.Sprintf("%s %s", sortBy, order)).
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&codes).Error; err != nil {
		utils.LogError("Failed to fetch discount codes: %v", err)
		utils.InternalServerError(c, "Failed to fetch discount codes", nil)
		return
	}
	utils.LogInfo("Retrieved %d discount codes out of %d total", len(codes), total)

	formatted := make([]gin.H, 0, len(codes))
	for i := range codes {
		formatted = append(formatted, formatDiscountCode(&codes[i]))
	}

	utils.Success(c, "Discount codes retrieved successfully", gin.H{
		"discount_codes": formatted,
		"pagination":     pagination.Meta(),
	})
}

// DeleteDiscountCode deletes an unused discount code. A code that has been
// redeemed is retired by deactivating it, never removed, so its usage
// history stays attached to something real.
func DeleteDiscountCode(c *gin.Context) {
	utils.LogInfo("DeleteDiscountCode called")

	seller, ok := requireSeller(c)
	if !ok {
		return
	}

	identifier := c.Param("id")
	if identifier == "" {
		utils.LogError("Missing discount code identifier")
		utils.BadRequest(c, "Discount code identifier is required", nil)
		return
	}
	utils.LogInfo("Processing deletion for discount code identifier: %s", identifier)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	code, ok := findOwnedDiscountCode(c, tx, seller, identifier)
	if !ok {
		tx.Rollback()
		return
	}
	utils.LogInfo("Found discount code with ID: %d, code: %s", code.ID, code.Code)

	if code.CurrentUsageCount > 0 {
		tx.Rollback()
		utils.LogError("Cannot delete discount code %s: it has been used %d times", code.Code, code.CurrentUsageCount)
		utils.BadRequest(c, "Cannot delete a discount code that has been used; deactivate it instead", nil)
		return
	}

	if err := tx.Delete(code).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete discount code %s: %v", code.Code, err)
		utils.InternalServerError(c, "Failed to delete discount code", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.InvalidateDiscountCode(code.Code)
	utils.LogInfo("Successfully deleted discount code with ID: %d, code: %s", code.ID, code.Code)
	utils.Success(c, "Discount code deleted successfully", nil)
}
