package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/Devika-314/CraftSphere/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// loadOverride fetches the active per-product override for (event, product),
// if one exists.
func loadOverride(tx *gorm.DB, eventID, productID uint) (*models.EventProductDiscount, error) {
	var override models.EventProductDiscount
	err := tx.Where("event_id = ? AND product_id = ? AND is_active = ?", eventID, productID, true).
		First(&override).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, InternalError("Failed to load product discount override", err)
	}
	return &override, nil
}

// closeActivePricingRecords stamps ValidUntil on the product's active
// pricing rows for an event. Records are closed, never deleted.
func closeActivePricingRecords(tx *gorm.DB, eventID, productID uint, now time.Time) error {
	return tx.Model(&models.ProductPricing{}).
		Where("product_id = ? AND source = ? AND source_id = ? AND is_active = ?",
			productID, models.PricingSourceEvent, eventID, true).
		Updates(map[string]interface{}{"is_active": false, "valid_until": now}).Error
}

// RecomputeProductPricing computes and persists one product's price under an
// event: the active override wins over the event-level rule, and the result
// is written to the product's cached price fields plus an audit row. This is
// the only writer of CurrentPrice and IsOnDiscount during an event's life.
func RecomputeProductPricing(tx *gorm.DB, event *models.Event, product *models.Product, now time.Time) error {
	override, err := loadOverride(tx, event.ID, product.ID)
	if err != nil {
		return err
	}

	source := ResolveDiscountSource(event, override)
	price, discountAmount := source.PriceFor(product.RegularPrice)

	if err := closeActivePricingRecords(tx, event.ID, product.ID, now); err != nil {
		return InternalError("Failed to close previous pricing records", err)
	}

	if source.Kind != SourceNone {
		record := models.ProductPricing{
			Reference:       uuid.NewString(),
			ProductID:       product.ID,
			BasePrice:       product.RegularPrice,
			DiscountedPrice: price,
			DiscountAmount:  discountAmount,
			DiscountPercent: DiscountPercentOf(product.RegularPrice, discountAmount),
			Source:          models.PricingSourceEvent,
			SourceID:        event.ID,
			Reason:          fmt.Sprintf("%s: %s", event.EventType, event.Title),
			ValidFrom:       event.StartingDate,
			ValidUntil:      &event.EndingDate,
			IsActive:        true,
		}
		if err := tx.Create(&record).Error; err != nil {
			return InternalError("Failed to record product pricing", err)
		}
	}

	updates := map[string]interface{}{
		"current_price":  price,
		"is_on_discount": discountAmount.IsPositive(),
		"updated_at":     now,
	}
	if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).Updates(updates).Error; err != nil {
		return InternalError("Failed to update product price", err)
	}

	return nil
}

// RecomputeEventPricing reprices every product enrolled in an event.
// Recomputing is idempotent: running it twice against the same event state
// produces the same cached prices and closes-then-reopens the same records.
func RecomputeEventPricing(tx *gorm.DB, eventID uint, now time.Time) error {
	var event models.Event
	if err := tx.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError("Event not found")
		}
		return InternalError("Failed to load event", err)
	}

	var products []models.Product
	if err := tx.Where("event_id = ?", eventID).Find(&products).Error; err != nil {
		return InternalError("Failed to load event products", err)
	}

	for i := range products {
		if err := RecomputeProductPricing(tx, &event, &products[i], now); err != nil {
			return err
		}
	}
	return nil
}

// ResetProductPricing returns a product to its baseline price after it
// leaves an event: cached price becomes the sale price if set, else the
// regular price, and the event's pricing records for it are closed.
func ResetProductPricing(tx *gorm.DB, eventID uint, product *models.Product, now time.Time) error {
	if err := closeActivePricingRecords(tx, eventID, product.ID, now); err != nil {
		return InternalError("Failed to close pricing records", err)
	}

	baseline := product.BaselinePrice()
	updates := map[string]interface{}{
		"current_price":  baseline,
		"is_on_discount": product.SalePrice.Valid && product.SalePrice.Decimal.LessThan(product.RegularPrice),
		"event_id":       nil,
		"updated_at":     now,
	}
	if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).Updates(updates).Error; err != nil {
		return InternalError("Failed to reset product price", err)
	}
	return nil
}

// AttachProductsToEvent enrolls products in an event and reprices each one.
// A product already enrolled in a different event is rejected rather than
// silently reassigned.
func AttachProductsToEvent(tx *gorm.DB, event *models.Event, productIDs []uint, now time.Time) error {
	for _, productID := range productIDs {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError(fmt.Sprintf("Product %d not found", productID))
			}
			return InternalError("Failed to load product", err)
		}

		if product.EventID != nil && *product.EventID != event.ID {
			return ConflictError(fmt.Sprintf("Product %d is already enrolled in another event", productID))
		}

		if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
			Update("event_id", event.ID).Error; err != nil {
			return InternalError("Failed to attach product to event", err)
		}

		if err := RecomputeProductPricing(tx, event, &product, now); err != nil {
			return err
		}
	}
	return nil
}

// DetachAllProductsFromEvent resets every enrolled product to baseline
// pricing and clears its event membership.
func DetachAllProductsFromEvent(tx *gorm.DB, eventID uint, now time.Time) error {
	var products []models.Product
	if err := tx.Where("event_id = ?", eventID).Find(&products).Error; err != nil {
		return InternalError("Failed to load event products", err)
	}

	for i := range products {
		if err := ResetProductPricing(tx, eventID, &products[i], now); err != nil {
			return err
		}
	}
	return nil
}
