package controllers

import (
	"errors"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/models"
	"github.com/Devika-314/CraftSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListShops returns active shops, paginated
func ListShops(c *gin.Context) {
	utils.LogInfo("ListShops called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Shop{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count shops: %v", err)
		utils.InternalServerError(c, "Failed to count shops", nil)
		return
	}
	pagination.SetTotal(total)

	var shops []models.Shop
	if err := query.Order("created_at desc").Offset(pagination.Offset).Limit(pagination.Limit).Find(&shops).Error; err != nil {
		utils.LogError("Failed to fetch shops: %v", err)
		utils.InternalServerError(c, "Failed to fetch shops", nil)
		return
	}
	utils.LogInfo("Retrieved %d shops out of %d total", len(shops), total)

	formatted := make([]gin.H, 0, len(shops))
	for _, shop := range shops {
		formatted = append(formatted, gin.H{
			"id":          shop.ID,
			"name":        shop.Name,
			"description": shop.Description,
			"created_at":  shop.CreatedAt.Format("2006-01-02"),
		})
	}

	utils.Success(c, "Shops retrieved successfully", gin.H{
		"shops":      formatted,
		"pagination": pagination.Meta(),
	})
}

// GetShop returns one shop with its products
func GetShop(c *gin.Context) {
	utils.LogInfo("GetShop called")

	shopID := c.Param("id")
	var shop models.Shop
	err := config.DB.Preload("Products", "is_active = ?", true).First(&shop, "id = ?", shopID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Shop not found with ID: %s", shopID)
			utils.NotFound(c, "Shop not found")
			return
		}
		utils.LogError("Failed to load shop %s: %v", shopID, err)
		utils.InternalServerError(c, "Failed to load shop", nil)
		return
	}

	products := make([]gin.H, 0, len(shop.Products))
	for i := range shop.Products {
		products = append(products, formatProductSummary(&shop.Products[i]))
	}

	utils.LogInfo("Successfully retrieved shop %d with %d products", shop.ID, len(products))
	utils.Success(c, "Shop retrieved successfully", gin.H{
		"shop": gin.H{
			"id":          shop.ID,
			"name":        shop.Name,
			"description": shop.Description,
			"products":    products,
		},
	})
}
