package utils

import (
	"testing"
	"time"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func attachInTransaction(event *models.Event, productIDs []uint) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		return AttachProductsToEvent(tx, event, productIDs, time.Now())
	})
}

func reloadProduct(t *testing.T, productID uint) *models.Product {
	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		t.Fatalf("Failed to reload product %d: %v", productID, err)
	}
	return &product
}

func TestAttachProductsToEventExclusivity(t *testing.T) {
	TestSetup(t)
	defer TestTeardown(t)

	seller := CreateTestSeller(t)
	shop := CreateTestShop(t, seller.ID)
	category := CreateTestCategory(t)
	product := CreateTestProduct(t, shop.ID, category.ID, d("100"))
	eventA := CreateTestEvent(t, shop.ID, models.DiscountKindPercentage, d("20"))
	eventB := CreateTestEvent(t, shop.ID, models.DiscountKindPercentage, d("50"))

	assert.NoError(t, attachInTransaction(eventA, []uint{product.ID}))

	// A product can belong to one event at a time
	err := attachInTransaction(eventB, []uint{product.ID})
	assert.True(t, IsKind(err, KindConflict), "got %v", err)

	reloaded := reloadProduct(t, product.ID)
	assert.NotNil(t, reloaded.EventID)
	assert.Equal(t, eventA.ID, *reloaded.EventID)
	assert.True(t, reloaded.CurrentPrice.Equal(d("80")), "price must still reflect the first event, got %s", reloaded.CurrentPrice)
	assert.True(t, reloaded.IsOnDiscount)

	// Re-attaching to the same event is not a conflict
	assert.NoError(t, attachInTransaction(eventA, []uint{product.ID}))
}

func TestDetachResetsBaselinePricing(t *testing.T) {
	TestSetup(t)
	defer TestTeardown(t)

	seller := CreateTestSeller(t)
	shop := CreateTestShop(t, seller.ID)
	category := CreateTestCategory(t)

	onSale := CreateTestProduct(t, shop.ID, category.ID, d("100"))
	if err := config.DB.Model(onSale).
		Update("sale_price", decimal.NewNullDecimal(d("75"))).Error; err != nil {
		t.Fatalf("Failed to set sale price: %v", err)
	}
	plain := CreateTestProduct(t, shop.ID, category.ID, d("40"))

	event := CreateTestEvent(t, shop.ID, models.DiscountKindPercentage, d("20"))
	assert.NoError(t, attachInTransaction(event, []uint{onSale.ID, plain.ID}))

	assert.True(t, reloadProduct(t, onSale.ID).CurrentPrice.Equal(d("80")))
	assert.True(t, reloadProduct(t, plain.ID).CurrentPrice.Equal(d("32")))

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return DetachAllProductsFromEvent(tx, event.ID, time.Now())
	})
	assert.NoError(t, err)

	// Sale price wins as the baseline when set
	reloaded := reloadProduct(t, onSale.ID)
	assert.Nil(t, reloaded.EventID)
	assert.True(t, reloaded.CurrentPrice.Equal(d("75")), "got %s", reloaded.CurrentPrice)
	assert.True(t, reloaded.IsOnDiscount, "sale price below regular still counts as discounted")

	// Without a sale price the regular price comes back
	reloaded = reloadProduct(t, plain.ID)
	assert.Nil(t, reloaded.EventID)
	assert.True(t, reloaded.CurrentPrice.Equal(d("40")), "got %s", reloaded.CurrentPrice)
	assert.False(t, reloaded.IsOnDiscount)

	// Audit rows are closed, never deleted
	var records []models.ProductPricing
	if err := config.DB.Where("source = ? AND source_id = ?", models.PricingSourceEvent, event.ID).
		Find(&records).Error; err != nil {
		t.Fatalf("Failed to load pricing records: %v", err)
	}
	assert.NotEmpty(t, records)
	for _, record := range records {
		assert.False(t, record.IsActive)
		assert.NotNil(t, record.ValidUntil)
	}
}
