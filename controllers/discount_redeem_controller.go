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

// RedeemDiscountRequest represents the request body for redeeming a code
// against a placed order
type RedeemDiscountRequest struct {
	Code    string `json:"code" binding:"required"`
	OrderID uint   `json:"order_id" binding:"required"`
}

// RedeemDiscount applies a discount code to an order. The whole protocol runs
// in one transaction so that two concurrent redemptions cannot both take the
// last slot of a capped code, and retrying a submission is caught by the
// per-order idempotency guard instead of double-spending the coupon.
func RedeemDiscount(c *gin.Context) {
	utils.LogInfo("RedeemDiscount called")

	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req RedeemDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Attempting to redeem code: %s on order %d for user ID: %d", req.Code, req.OrderID, user.ID)

	var result *utils.RedemptionResult
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("OrderItems.Product").First(&order, req.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Order not found")
			}
			return utils.InternalError("Failed to load order", err)
		}

		if order.UserID != user.ID {
			return utils.NotFoundError("Order not found")
		}

		var err error
		result, err = utils.RedeemDiscountCode(tx, req.Code, &order, user.ID, time.Now())
		return err
	})
	if err != nil {
		utils.LogError("Redemption failed for code %s on order %d: %v", req.Code, req.OrderID, err)
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Successfully redeemed code %s on order %d for user ID: %d, discount: %s",
		result.Code.Code, req.OrderID, user.ID, result.DiscountAmount)
	utils.Success(c, "Discount code applied successfully", gin.H{
		"code":            result.Code.Code,
		"order_id":        req.OrderID,
		"order_total":     result.OrderTotal,
		"discount_amount": result.DiscountAmount,
		"final_amount":    result.FinalAmount,
	})
}

// ListDiscountUsages returns the audit trail of a code's redemptions
func ListDiscountUsages(c *gin.Context) {
	utils.LogInfo("ListDiscountUsages called")

	seller, ok := requireSeller(c)
	if !ok {
		return
	}

	identifier := c.Param("id")
	code, ok := findOwnedDiscountCode(c, config.DB, seller, identifier)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.DiscountUsage{}).Where("discount_code_id = ?", code.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count usages for code %s: %v", code.Code, err)
		utils.InternalServerError(c, "Failed to count usages", nil)
		return
	}
	pagination.SetTotal(total)

	var usages []models.DiscountUsage
	if err := query.Order("used_at desc").Offset(pagination.Offset).Limit(pagination.Limit).Find(&usages).Error; err != nil {
		utils.LogError("Failed to fetch usages for code %s: %v", code.Code, err)
		utils.InternalServerError(c, "Failed to fetch usages", nil)
		return
	}
	utils.LogInfo("Retrieved %d usages for code %s", len(usages), code.Code)

	formatted := make([]gin.H, 0, len(usages))
	for _, usage := range usages {
		formatted = append(formatted, gin.H{
			"order_id":        usage.OrderID,
			"user_id":         usage.UserID,
			"discount_amount": usage.DiscountAmount,
			"used_at":         usage.UsedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "Discount usages retrieved successfully", gin.H{
		"code":       code.Code,
		"used_count": code.CurrentUsageCount,
		"usages":     formatted,
		"pagination": pagination.Meta(),
	})
}
