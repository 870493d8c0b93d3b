package controllers

import (
	"time"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CartItemRequest is one line of the cart being quoted
type CartItemRequest struct {
	ProductID  uint    `json:"product_id" binding:"required"`
	CategoryID uint    `json:"category_id"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	Price      float64 `json:"price" binding:"required,gt=0"`
}

// ValidateDiscountRequest represents the request body for a cart preview quote
type ValidateDiscountRequest struct {
	Code   string            `json:"code" binding:"required"`
	ShopID *uint             `json:"shop_id"`
	Items  []CartItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ValidateDiscount quotes a discount code against a live cart. This is the
// read-only preview path: it writes nothing and can be polled on every cart
// change without side effects.
func ValidateDiscount(c *gin.Context) {
	utils.LogInfo("ValidateDiscount called")

	var req ValidateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Validating discount code: %s against %d cart items", req.Code, len(req.Items))

	items := make([]utils.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, utils.LineItem{
			ProductID:  item.ProductID,
			CategoryID: item.CategoryID,
			Quantity:   item.Quantity,
			Price:      decimal.NewFromFloat(item.Price),
		})
	}

	quote, err := utils.ValidateDiscountCode(config.DB, req.Code, req.ShopID, items, time.Now())
	if err != nil {
		utils.LogError("Discount validation failed for code %s: %v", req.Code, err)
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Discount code %s valid: discount %s on cart total %s", quote.Code.Code, quote.DiscountAmount, quote.CartTotal)
	utils.Success(c, "Discount code is valid", gin.H{
		"code":            quote.Code.Code,
		"kind":            quote.Code.Kind,
		"cart_total":      quote.CartTotal,
		"discount_amount": quote.DiscountAmount,
		"final_amount":    quote.FinalAmount,
	})
}
