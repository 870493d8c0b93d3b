package controllers

import (
	"time"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/models"
	"github.com/Devika-314/CraftSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// UpdateDiscountCodeRequest represents the request body for updating a discount code
type UpdateDiscountCodeRequest struct {
	Kind               string     `json:"kind" binding:"omitempty,oneof=PERCENTAGE FIXED_AMOUNT FREE_SHIPPING"`
	Value              *float64   `json:"value"`
	MaxDiscount        *float64   `json:"max_discount"`
	MinimumOrderAmount *float64   `json:"minimum_order_amount"`
	ApplicableToAll    *bool      `json:"applicable_to_all"`
	ProductIDs         []int64    `json:"product_ids"`
	CategoryIDs        []int64    `json:"category_ids"`
	ExcludedProductIDs []int64    `json:"excluded_product_ids"`
	UsageLimit         *int       `json:"usage_limit"`
	PerUserLimit       *int       `json:"per_user_limit"`
	ValidFrom          *time.Time `json:"valid_from"`
	ValidUntil         *time.Time `json:"valid_until"`
	IsActive           *bool      `json:"is_active"`
}

// UpdateDiscountCode updates an existing discount code's rule, scope or limits
func UpdateDiscountCode(c *gin.Context) {
	utils.LogInfo("UpdateDiscountCode called")

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
	utils.LogInfo("Processing update for discount code identifier: %s", identifier)

	var req UpdateDiscountCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for discount code %s: %v", identifier, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

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

	// The rule after the patch must be consistent as a whole, so merge the
	// incoming fields onto the current values before validating.
	kind := code.Kind
	if req.Kind != "" {
		kind = req.Kind
	}
	value := code.Value
	if req.Value != nil {
		value = decimal.NewFromFloat(*req.Value)
	}
	maxDiscount := code.MaxDiscount
	if req.MaxDiscount != nil {
		maxDiscount = decimal.NewFromFloat(*req.MaxDiscount)
	}
	if err := utils.ValidateDiscountRule(kind, value, maxDiscount); err != nil {
		tx.Rollback()
		utils.LogError("Invalid discount rule for code %s: %v", code.Code, err)
		utils.ValidationError(c, err.Error(), nil)
		return
	}

	validFrom := code.ValidFrom
	if req.ValidFrom != nil {
		validFrom = *req.ValidFrom
	}
	validUntil := code.ValidUntil
	if req.ValidUntil != nil {
		validUntil = req.ValidUntil
	}
	if err := utils.ValidateDateWindow(validFrom, validUntil); err != nil {
		tx.Rollback()
		utils.LogError("Invalid validity window for code %s: %v", code.Code, err)
		utils.ValidationError(c, "Valid until must be after valid from", nil)
		return
	}

	// A usage limit can never be moved below what has already been redeemed
	if req.UsageLimit != nil && *req.UsageLimit > 0 && *req.UsageLimit < code.CurrentUsageCount {
		tx.Rollback()
		utils.LogError("Usage limit %d below current usage %d for code %s", *req.UsageLimit, code.CurrentUsageCount, code.Code)
		utils.ValidationError(c, "Usage limit cannot be lower than the number of times the code has been used", nil)
		return
	}

	updates := map[string]interface{}{
		"kind":         kind,
		"value":        value,
		"max_discount": maxDiscount,
		"valid_from":   validFrom,
		"valid_until":  validUntil,
		"updated_at":   time.Now(),
	}
	if req.MinimumOrderAmount != nil {
		updates["minimum_order_amount"] = decimal.NewFromFloat(*req.MinimumOrderAmount)
	}
	if req.ApplicableToAll != nil {
		updates["applicable_to_all"] = *req.ApplicableToAll
	}
	if req.ProductIDs != nil {
		updates["product_ids"] = pq.Int64Array(req.ProductIDs)
	}
	if req.CategoryIDs != nil {
		updates["category_ids"] = pq.Int64Array(req.CategoryIDs)
	}
	if req.ExcludedProductIDs != nil {
		updates["excluded_product_ids"] = pq.Int64Array(req.ExcludedProductIDs)
	}
	if req.UsageLimit != nil {
		updates["usage_limit"] = *req.UsageLimit
	}
	if req.PerUserLimit != nil {
		updates["per_user_limit"] = *req.PerUserLimit
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := tx.Model(code).Updates(updates).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update discount code %s: %v", code.Code, err)
		utils.InternalServerError(c, "Failed to update discount code", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.InvalidateDiscountCode(code.Code)

	var updated models.DiscountCode
	if err := config.DB.First(&updated, code.ID).Error; err != nil {
		utils.LogError("Failed to reload discount code %d: %v", code.ID, err)
		utils.InternalServerError(c, "Failed to reload discount code", nil)
		return
	}

	utils.LogInfo("Successfully updated discount code with ID: %d, code: %s", updated.ID, updated.Code)
	utils.Success(c, "Discount code updated successfully", gin.H{
		"discount_code": formatDiscountCode(&updated),
	})
}
