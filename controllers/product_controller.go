package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/models"
	"github.com/Devika-314/CraftSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// displayPrice returns the price and discount flag a catalog read should
// show. The cached fields are trusted while the owning event is live; once
// the event's window has passed the baseline is shown instead, so a product
// is never displayed on sale after its event ended just because no write
// has happened yet.
func displayPrice(product *models.Product, event *models.Event, now time.Time) (decimal.Decimal, bool) {
	if product.EventID == nil || event == nil || event.IsLive(now) {
		return product.CurrentPrice, product.IsOnDiscount
	}
	baseline := product.BaselinePrice()
	return baseline, product.SalePrice.Valid && product.SalePrice.Decimal.LessThan(product.RegularPrice)
}

// formatProductSummary shapes a product row for list responses
func formatProductSummary(product *models.Product) gin.H {
	return gin.H{
		"id":             product.ID,
		"name":           product.Name,
		"shop_id":        product.ShopID,
		"category_id":    product.CategoryID,
		"regular_price":  product.RegularPrice,
		"current_price":  product.CurrentPrice,
		"is_on_discount": product.IsOnDiscount,
		"event_id":       product.EventID,
		"image_url":      product.ImageURL,
	}
}

// ListProducts returns active products, paginated and optionally filtered by
// shop or category
func ListProducts(c *gin.Context) {
	utils.LogInfo("ListProducts called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Product{}).Where("is_active = ?", true)

	if shopID := c.Query("shop_id"); shopID != "" {
		query = query.Where("shop_id = ?", shopID)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if c.Query("on_discount") == "true" {
		query = query.Where("is_on_discount = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to count products", nil)
		return
	}
	pagination.SetTotal(total)

	var products []models.Product
	if err := query.Order("created_at desc").Offset(pagination.Offset).Limit(pagination.Limit).Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}
	utils.LogInfo("Retrieved %d products out of %d total", len(products), total)

	// Resolve the events behind discounted products once, then apply the
	// lazy expiry check per product
	eventIDs := make([]uint, 0)
	for i := range products {
		if products[i].EventID != nil {
			eventIDs = append(eventIDs, *products[i].EventID)
		}
	}
	events := make(map[uint]*models.Event)
	if len(eventIDs) > 0 {
		var rows []models.Event
		if err := config.DB.Where("id IN ?", eventIDs).Find(&rows).Error; err != nil {
			utils.LogError("Failed to load events for product list: %v", err)
			utils.InternalServerError(c, "Failed to load events", nil)
			return
		}
		for i := range rows {
			events[rows[i].ID] = &rows[i]
		}
	}

	now := time.Now()
	formatted := make([]gin.H, 0, len(products))
	for i := range products {
		product := &products[i]
		var event *models.Event
		if product.EventID != nil {
			event = events[*product.EventID]
		}
		price, onDiscount := displayPrice(product, event, now)
		entry := formatProductSummary(product)
		entry["current_price"] = price
		entry["is_on_discount"] = onDiscount
		formatted = append(formatted, entry)
	}

	utils.Success(c, "Products retrieved successfully", gin.H{
		"products":   formatted,
		"pagination": pagination.Meta(),
	})
}

// GetProduct returns one product with its pricing detail and bumps the view
// counter
func GetProduct(c *gin.Context) {
	utils.LogInfo("GetProduct called")

	productID := c.Param("id")
	var product models.Product
	if err := config.DB.Preload("Category").Preload("Shop").First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Product not found with ID: %s", productID)
			utils.NotFound(c, "Product not found")
			return
		}
		utils.LogError("Failed to load product %s: %v", productID, err)
		utils.InternalServerError(c, "Failed to load product", nil)
		return
	}

	if err := config.DB.Model(&product).UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		utils.LogError("Failed to bump view count for product %d: %v", product.ID, err)
	}

	var event *models.Event
	if product.EventID != nil {
		var row models.Event
		if err := config.DB.First(&row, *product.EventID).Error; err == nil {
			event = &row
		}
	}

	now := time.Now()
	price, onDiscount := displayPrice(&product, event, now)
	savings := product.RegularPrice.Sub(price)
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	response := gin.H{
		"id":             product.ID,
		"name":           product.Name,
		"description":    product.Description,
		"shop_id":        product.ShopID,
		"shop_name":      product.Shop.Name,
		"category_id":    product.CategoryID,
		"category_name":  product.Category.Name,
		"regular_price":  product.RegularPrice,
		"current_price":  price,
		"is_on_discount": onDiscount,
		"savings":        savings,
		"stock":          product.Stock,
		"image_url":      product.ImageURL,
		"views":          product.Views + 1,
	}
	if product.SalePrice.Valid {
		response["sale_price"] = product.SalePrice.Decimal
	}
	if event != nil && event.IsLive(now) {
		response["event"] = gin.H{
			"id":          event.ID,
			"title":       event.Title,
			"event_type":  event.EventType,
			"ending_date": event.EndingDate.Format("2006-01-02 15:04:05"),
		}
	}

	utils.LogInfo("Successfully retrieved product %d", product.ID)
	utils.Success(c, "Product retrieved successfully", gin.H{
		"product": response,
	})
}

// GetProductPricingHistory returns the audit trail of a product's event
// pricing records, newest first
func GetProductPricingHistory(c *gin.Context) {
	utils.LogInfo("GetProductPricingHistory called")

	seller, ok := requireSeller(c)
	if !ok {
		return
	}

	productID := c.Param("id")
	var product models.Product
	if err := config.DB.First(&product, "id = ?", productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}
	if _, ok := requireOwnedShop(c, seller, product.ShopID); !ok {
		return
	}

	var records []models.ProductPricing
	if err := config.DB.Where("product_id = ?", product.ID).Order("created_at desc").Find(&records).Error; err != nil {
		utils.LogError("Failed to fetch pricing records for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to fetch pricing records", nil)
		return
	}

	formatted := make([]gin.H, 0, len(records))
	for _, record := range records {
		entry := gin.H{
			"reference":        record.Reference,
			"base_price":       record.BasePrice,
			"discounted_price": record.DiscountedPrice,
			"discount_amount":  record.DiscountAmount,
			"discount_percent": record.DiscountPercent,
			"source":           record.Source,
			"source_id":        record.SourceID,
			"reason":           record.Reason,
			"valid_from":       record.ValidFrom.Format("2006-01-02 15:04:05"),
			"is_active":        record.IsActive,
		}
		if record.ValidUntil != nil {
			entry["valid_until"] = record.ValidUntil.Format("2006-01-02 15:04:05")
		}
		formatted = append(formatted, entry)
	}

	utils.LogInfo("Retrieved %d pricing records for product %d", len(formatted), product.ID)
	utils.Success(c, "Pricing history retrieved successfully", gin.H{
		"product_id": fmt.Sprint(product.ID),
		"records":    formatted,
	})
}
