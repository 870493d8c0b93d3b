package controllers

import (
	"strings"
	"time"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/models"
	"github.com/Devika-314/CraftSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CreateDiscountCodeRequest represents the request body for creating a discount code
type CreateDiscountCodeRequest struct {
	Code               string     `json:"code" binding:"required"`
	Kind               string     `json:"kind" binding:"required,oneof=PERCENTAGE FIXED_AMOUNT FREE_SHIPPING"`
	Value              float64    `json:"value"`
	MaxDiscount        float64    `json:"max_discount" binding:"omitempty,gt=0"`
	MinimumOrderAmount float64    `json:"minimum_order_amount" binding:"omitempty,gt=0"`
	ShopID             uint       `json:"shop_id" binding:"required"`
	ApplicableToAll    *bool      `json:"applicable_to_all"`
	ProductIDs         []int64    `json:"product_ids"`
	CategoryIDs        []int64    `json:"category_ids"`
	ExcludedProductIDs []int64    `json:"excluded_product_ids"`
	UsageLimit         int        `json:"usage_limit" binding:"omitempty,gt=0"`
	PerUserLimit       int        `json:"per_user_limit" binding:"omitempty,gt=0"`
	ValidFrom          *time.Time `json:"valid_from"`
	ValidUntil         *time.Time `json:"valid_until"`
}

// CreateDiscountCode creates a new discount code for a shop
func CreateDiscountCode(c *gin.Context) {
	utils.LogInfo("CreateDiscountCode called")

	seller, ok := requireSeller(c)
	if !ok {
		return
	}

	var req CreateDiscountCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	utils.LogInfo("Processing discount code creation with code: %s for shop %d", req.Code, req.ShopID)

	if err := utils.ValidateDiscountCodeFormat(req.Code); err != nil {
		utils.LogError("Invalid code format for %s: %v", req.Code, err)
		utils.ValidationError(c, err.Error(), nil)
		return
	}

	value := decimal.NewFromFloat(req.Value)
	maxDiscount := decimal.NewFromFloat(req.MaxDiscount)
	if err := utils.ValidateDiscountRule(req.Kind, value, maxDiscount); err != nil {
		utils.LogError("Invalid discount rule for code %s: %v", req.Code, err)
		utils.ValidationError(c, err.Error(), nil)
		return
	}

	validFrom := time.Now()
	if req.ValidFrom != nil {
		validFrom = *req.ValidFrom
	}
	if err := utils.ValidateDateWindow(validFrom, req.ValidUntil); err != nil {
		utils.LogError("Invalid validity window for code %s: %v", req.Code, err)
		utils.ValidationError(c, "Valid until must be after valid from", nil)
		return
	}

	shop, ok := requireOwnedShop(c, seller, req.ShopID)
	if !ok {
		return
	}

	applicableToAll := true
	if req.ApplicableToAll != nil {
		applicableToAll = *req.ApplicableToAll
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	// Check for an existing code, case-insensitively
	var existing models.DiscountCode
	if err := tx.Where("LOWER(code) = LOWER(?)", req.Code).First(&existing).Error; err == nil {
		tx.Rollback()
		utils.LogError("Discount code already exists: %s", req.Code)
		utils.Conflict(c, "Discount code already exists", nil)
		return
	}

	code := models.DiscountCode{
		Code:               req.Code,
		Kind:               req.Kind,
		Value:              value,
		MaxDiscount:        maxDiscount,
		MinimumOrderAmount: decimal.NewFromFloat(req.MinimumOrderAmount),
		ShopID:             shop.ID,
		SellerID:           seller.ID,
		ApplicableToAll:    applicableToAll,
		ProductIDs:         pq.Int64Array(req.ProductIDs),
		CategoryIDs:        pq.Int64Array(req.CategoryIDs),
		ExcludedProductIDs: pq.Int64Array(req.ExcludedProductIDs),
		UsageLimit:         req.UsageLimit,
		PerUserLimit:       req.PerUserLimit,
		ValidFrom:          validFrom,
		ValidUntil:         req.ValidUntil,
		IsActive:           true,
	}

	if err := tx.Create(&code).Error; err != nil {
		tx.Rollback()
		if strings.Contains(err.Error(), "idx_discount_codes_code") {
			utils.LogError("Duplicate discount code: %s", req.Code)
			utils.Conflict(c, "Discount code already exists", nil)
			return
		}
		utils.LogError("Failed to create discount code: %v", err)
		utils.InternalServerError(c, "Failed to create discount code", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Successfully created discount code %s with ID: %d", code.Code, code.ID)
	utils.Created(c, "Discount code created successfully", gin.H{
		"discount_code": formatDiscountCode(&code),
	})
}

// formatDiscountCode shapes a code row for API responses
func formatDiscountCode(dc *models.DiscountCode) gin.H {
	now := time.Now()
	response := gin.H{
		"id":                   dc.ID,
		"code":                 dc.Code,
		"kind":                 dc.Kind,
		"value":                dc.Value,
		"max_discount":         dc.MaxDiscount,
		"minimum_order_amount": dc.MinimumOrderAmount,
		"shop_id":              dc.ShopID,
		"applicable_to_all":    dc.ApplicableToAll,
		"product_ids":          dc.ProductIDs,
		"category_ids":         dc.CategoryIDs,
		"excluded_product_ids": dc.ExcludedProductIDs,
		"usage_limit":          dc.UsageLimit,
		"per_user_limit":       dc.PerUserLimit,
		"current_usage_count":  dc.CurrentUsageCount,
		"valid_from":           dc.ValidFrom.Format("2006-01-02 15:04:05"),
		"is_active":            dc.IsActive,
		"is_expired":           !utils.WithinWindow(now, dc.ValidFrom, dc.ValidUntil),
		"created_at":           dc.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if dc.ValidUntil != nil {
		response["valid_until"] = dc.ValidUntil.Format("2006-01-02 15:04:05")
	}
	return response
}
