package config

import (
	"fmt"
	"log"

	"github.com/Devika-314/CraftSphere/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB initializes the database connection and performs migrations
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.DiscountCode{},
		&models.DiscountUsage{},
		&models.Event{},
		&models.EventProductDiscount{},
		&models.ProductPricing{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	ensureCaseInsensitiveCodeIndex()
}

// ensureCaseInsensitiveCodeIndex backs the case-insensitive uniqueness of
// redemption codes. Codes are stored upper-cased, but the expression index
// protects against rows written before that convention.
func ensureCaseInsensitiveCodeIndex() {
	err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_discount_codes_code_lower
		ON discount_codes (LOWER(code))
		WHERE deleted_at IS NULL
	`).Error
	if err != nil {
		log.Printf("Failed to create case-insensitive code index: %v", err)
	}
}
