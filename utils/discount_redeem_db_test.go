package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func loadOrderForRedemption(t *testing.T, tx *gorm.DB, orderID uint) *models.Order {
	var order models.Order
	if err := tx.Preload("OrderItems.Product").First(&order, orderID).Error; err != nil {
		t.Fatalf("Failed to load order %d: %v", orderID, err)
	}
	return &order
}

func redeemInTransaction(code string, orderID, userID uint) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("OrderItems.Product").First(&order, orderID).Error; err != nil {
			return err
		}
		_, err := RedeemDiscountCode(tx, code, &order, userID, time.Now())
		return err
	})
}

func TestRedeemDiscountCodeConcurrentLastSlot(t *testing.T) {
	TestSetup(t)
	defer TestTeardown(t)

	seller := CreateTestSeller(t)
	shop := CreateTestShop(t, seller.ID)
	category := CreateTestCategory(t)
	product := CreateTestProduct(t, shop.ID, category.ID, d("100"))
	buyer := CreateTestBuyer(t)
	code := CreateTestDiscountCode(t, shop.ID, seller.ID, "LASTSLOT", 1)

	const attempts = 5
	orders := make([]*models.Order, attempts)
	for i := range orders {
		orders[i] = CreateTestOrder(t, buyer.ID, shop.ID, product, 1)
	}

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = redeemInTransaction(code.Code, orders[i].ID, buyer.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, IsKind(err, KindUsageLimitReached), "loser must fail on the usage cap, got %v", err)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one redemption may take the last slot")

	var reloaded models.DiscountCode
	if err := config.DB.First(&reloaded, code.ID).Error; err != nil {
		t.Fatalf("Failed to reload discount code: %v", err)
	}
	assert.Equal(t, 1, reloaded.CurrentUsageCount)

	var usageRows int64
	config.DB.Model(&models.DiscountUsage{}).Where("discount_code_id = ?", code.ID).Count(&usageRows)
	assert.Equal(t, int64(1), usageRows)
}

func TestRedeemSecondCodeOnSameOrderRejected(t *testing.T) {
	TestSetup(t)
	defer TestTeardown(t)

	seller := CreateTestSeller(t)
	shop := CreateTestShop(t, seller.ID)
	category := CreateTestCategory(t)
	product := CreateTestProduct(t, shop.ID, category.ID, d("100"))
	buyer := CreateTestBuyer(t)
	first := CreateTestDiscountCode(t, shop.ID, seller.ID, "FIRST10", 0)
	second := CreateTestDiscountCode(t, shop.ID, seller.ID, "SECOND10", 0)
	order := CreateTestOrder(t, buyer.ID, shop.ID, product, 2)

	assert.NoError(t, redeemInTransaction(first.Code, order.ID, buyer.ID))

	// A different code against the same order must not overwrite the stamp
	err := redeemInTransaction(second.Code, order.ID, buyer.ID)
	assert.True(t, IsKind(err, KindAlreadyApplied), "got %v", err)

	stamped := loadOrderForRedemption(t, config.DB, order.ID)
	assert.NotNil(t, stamped.DiscountCodeID)
	assert.Equal(t, first.ID, *stamped.DiscountCodeID)
	assert.Equal(t, first.Code, stamped.DiscountCode)

	var secondReloaded models.DiscountCode
	config.DB.First(&secondReloaded, second.ID)
	assert.Equal(t, 0, secondReloaded.CurrentUsageCount, "rejected code must not consume a slot")

	var usageRows int64
	config.DB.Model(&models.DiscountUsage{}).Where("order_id = ?", order.ID).Count(&usageRows)
	assert.Equal(t, int64(1), usageRows)
}

func TestRedeemSameCodeTwiceOnSameOrderRejected(t *testing.T) {
	TestSetup(t)
	defer TestTeardown(t)

	seller := CreateTestSeller(t)
	shop := CreateTestShop(t, seller.ID)
	category := CreateTestCategory(t)
	product := CreateTestProduct(t, shop.ID, category.ID, d("50"))
	buyer := CreateTestBuyer(t)
	code := CreateTestDiscountCode(t, shop.ID, seller.ID, "ONCEONLY", 0)
	order := CreateTestOrder(t, buyer.ID, shop.ID, product, 1)

	assert.NoError(t, redeemInTransaction(code.Code, order.ID, buyer.ID))

	err := redeemInTransaction(code.Code, order.ID, buyer.ID)
	assert.True(t, IsKind(err, KindAlreadyApplied), "got %v", err)

	var reloaded models.DiscountCode
	config.DB.First(&reloaded, code.ID)
	assert.Equal(t, 1, reloaded.CurrentUsageCount)
}

func TestRedeemAllItemsExcludedNotApplicable(t *testing.T) {
	TestSetup(t)
	defer TestTeardown(t)

	seller := CreateTestSeller(t)
	shop := CreateTestShop(t, seller.ID)
	category := CreateTestCategory(t)
	product := CreateTestProduct(t, shop.ID, category.ID, d("100"))
	buyer := CreateTestBuyer(t)
	code := CreateTestDiscountCode(t, shop.ID, seller.ID, "NOTYOURS", 0)
	if err := config.DB.Model(code).
		Update("excluded_product_ids", pq.Int64Array{int64(product.ID)}).Error; err != nil {
		t.Fatalf("Failed to set exclusion list: %v", err)
	}
	order := CreateTestOrder(t, buyer.ID, shop.ID, product, 1)

	err := redeemInTransaction(code.Code, order.ID, buyer.ID)
	assert.True(t, IsKind(err, KindNotApplicable), "got %v", err)

	// Nothing visible: no counter movement, no usage row, no stamp
	var reloaded models.DiscountCode
	config.DB.First(&reloaded, code.ID)
	assert.Equal(t, 0, reloaded.CurrentUsageCount)

	var usageRows int64
	config.DB.Model(&models.DiscountUsage{}).Where("order_id = ?", order.ID).Count(&usageRows)
	assert.Equal(t, int64(0), usageRows)

	stamped := loadOrderForRedemption(t, config.DB, order.ID)
	assert.Nil(t, stamped.DiscountCodeID)
}
