package utils

import (
	"os"
	"testing"
	"time"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TestSetup initializes the test database. Suites that need a database are
// skipped when none is configured.
func TestSetup(t *testing.T) {
	if os.Getenv("DB_HOST") == "" {
		t.Skip("test database not configured")
	}
	if _, err := config.LoadConfig(); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	config.InitDB()
	ClearTestData()
}

// TestTeardown cleans up test environment
func TestTeardown(t *testing.T) {
	ClearTestData()
}

// ClearTestData clears all test data from the database and flushes the
// read-path cache
func ClearTestData() {
	config.DB.Exec("TRUNCATE TABLE discount_usages CASCADE")
	config.DB.Exec("TRUNCATE TABLE discount_codes CASCADE")
	config.DB.Exec("TRUNCATE TABLE product_pricings CASCADE")
	config.DB.Exec("TRUNCATE TABLE event_product_discounts CASCADE")
	config.DB.Exec("TRUNCATE TABLE events CASCADE")
	config.DB.Exec("TRUNCATE TABLE order_items CASCADE")
	config.DB.Exec("TRUNCATE TABLE orders CASCADE")
	config.DB.Exec("TRUNCATE TABLE products CASCADE")
	config.DB.Exec("TRUNCATE TABLE categories CASCADE")
	config.DB.Exec("TRUNCATE TABLE shops CASCADE")
	config.DB.Exec("TRUNCATE TABLE users CASCADE")
	discountCodeCache.Flush()
}

// CreateTestSeller creates a seller account
func CreateTestSeller(t *testing.T) *models.User {
	user := &models.User{
		Username:  "testseller",
		Email:     "seller@example.com",
		FirstName: "Test",
		LastName:  "Seller",
		IsSeller:  true,
	}
	if err := config.DB.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test seller: %v", err)
	}
	return user
}

// CreateTestBuyer creates a buyer account
func CreateTestBuyer(t *testing.T) *models.User {
	user := &models.User{
		Username:  "testbuyer",
		Email:     "buyer@example.com",
		FirstName: "Test",
		LastName:  "Buyer",
	}
	if err := config.DB.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test buyer: %v", err)
	}
	return user
}

// CreateTestShop creates a shop owned by the given seller
func CreateTestShop(t *testing.T, sellerID uint) *models.Shop {
	shop := &models.Shop{
		Name:        "Test Shop",
		Description: "Test Shop Description",
		SellerID:    sellerID,
		IsActive:    true,
	}
	if err := config.DB.Create(shop).Error; err != nil {
		t.Fatalf("Failed to create test shop: %v", err)
	}
	return shop
}

// CreateTestCategory creates a test category
func CreateTestCategory(t *testing.T) *models.Category {
	category := &models.Category{
		Name:        "Test Category",
		Description: "Test Category Description",
	}
	if err := config.DB.Create(category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return category
}

// CreateTestProduct creates a product with the given regular price
func CreateTestProduct(t *testing.T, shopID, categoryID uint, regularPrice decimal.Decimal) *models.Product {
	product := &models.Product{
		Name:         "Test Product " + uuid.NewString()[:8],
		Description:  "Test Product Description",
		ShopID:       shopID,
		CategoryID:   categoryID,
		RegularPrice: regularPrice,
		CurrentPrice: regularPrice,
		Stock:        100,
		IsActive:     true,
	}
	if err := config.DB.Create(product).Error; err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return product
}

// CreateTestDiscountCode creates an active percentage code valid from an hour
// ago, applicable to the whole shop
func CreateTestDiscountCode(t *testing.T, shopID, sellerID uint, code string, usageLimit int) *models.DiscountCode {
	dc := &models.DiscountCode{
		Code:            code,
		Kind:            models.DiscountKindPercentage,
		Value:           decimal.NewFromInt(10),
		ShopID:          shopID,
		SellerID:        sellerID,
		ApplicableToAll: true,
		UsageLimit:      usageLimit,
		ValidFrom:       time.Now().Add(-time.Hour),
		IsActive:        true,
	}
	if err := config.DB.Create(dc).Error; err != nil {
		t.Fatalf("Failed to create test discount code: %v", err)
	}
	return dc
}

// CreateTestOrder creates a placed order holding one line item of the given
// product
func CreateTestOrder(t *testing.T, userID, shopID uint, product *models.Product, quantity int) *models.Order {
	lineTotal := product.RegularPrice.Mul(decimal.NewFromInt(int64(quantity)))
	order := &models.Order{
		ReferenceNumber: uuid.NewString(),
		UserID:          userID,
		ShopID:          shopID,
		TotalAmount:     lineTotal,
		FinalTotal:      lineTotal,
		Status:          models.OrderStatusPlaced,
		OrderItems: []models.OrderItem{
			{
				ProductID: product.ID,
				Quantity:  quantity,
				Price:     product.RegularPrice,
				Total:     lineTotal,
			},
		},
	}
	if err := config.DB.Create(order).Error; err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}
	return order
}

// CreateTestEvent creates a live event with the given event-level rule
func CreateTestEvent(t *testing.T, shopID uint, kind string, value decimal.Decimal) *models.Event {
	event := &models.Event{
		Title:         "Test Event " + uuid.NewString()[:8],
		EventType:     models.EventTypeFlashSale,
		ShopID:        shopID,
		DiscountKind:  kind,
		DiscountValue: value,
		StartingDate:  time.Now().Add(-time.Hour),
		EndingDate:    time.Now().Add(24 * time.Hour),
		IsActive:      true,
	}
	if err := config.DB.Create(event).Error; err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}
	return event
}
