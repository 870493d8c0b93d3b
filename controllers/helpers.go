package controllers

import (
	"errors"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/models"
	"github.com/Devika-314/CraftSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// errHandled signals that a response was already written inside a
// transaction closure; the transaction rolls back and the caller returns.
var errHandled = errors.New("response already sent")

// requireUser pulls the authenticated user from the request context
func requireUser(c *gin.Context) (models.User, bool) {
	user, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return models.User{}, false
	}
	userModel, ok := user.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.InternalServerError(c, "Invalid user type", nil)
		return models.User{}, false
	}
	return userModel, true
}

// requireSeller pulls the authenticated user and checks the seller flag
func requireSeller(c *gin.Context) (models.User, bool) {
	user, ok := requireUser(c)
	if !ok {
		return models.User{}, false
	}
	if !user.IsSeller && !user.IsAdmin {
		utils.LogError("Non-seller user %d attempted seller access", user.ID)
		utils.Forbidden(c, "Seller access required")
		return models.User{}, false
	}
	return user, true
}

// requireOwnedShop loads a shop and checks the caller owns it. Admins may
// act on any shop.
func requireOwnedShop(c *gin.Context, user models.User, shopID uint) (*models.Shop, bool) {
	var shop models.Shop
	if err := config.DB.First(&shop, shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Shop %d not found", shopID)
			utils.NotFound(c, "Shop not found")
			return nil, false
		}
		utils.LogError("Failed to load shop %d: %v", shopID, err)
		utils.InternalServerError(c, "Failed to load shop", nil)
		return nil, false
	}

	if shop.SellerID != user.ID && !user.IsAdmin {
		utils.LogError("User %d attempted access to shop %d owned by %d", user.ID, shop.ID, shop.SellerID)
		utils.Forbidden(c, "You do not own this shop")
		return nil, false
	}
	return &shop, true
}

// findOwnedDiscountCode loads a discount code by id or code string and
// checks ownership
func findOwnedDiscountCode(c *gin.Context, tx *gorm.DB, user models.User, identifier string) (*models.DiscountCode, bool) {
	var code models.DiscountCode
	if err := tx.Where("id = ?", identifier).First(&code).Error; err != nil {
		if err := tx.Where("LOWER(code) = LOWER(?)", identifier).First(&code).Error; err != nil {
			utils.LogError("Discount code not found with identifier: %s", identifier)
			utils.NotFound(c, "Discount code not found")
			return nil, false
		}
	}
	if code.SellerID != user.ID && !user.IsAdmin {
		utils.LogError("User %d attempted access to discount code %d owned by %d", user.ID, code.ID, code.SellerID)
		utils.Forbidden(c, "You do not own this discount code")
		return nil, false
	}
	return &code, true
}
