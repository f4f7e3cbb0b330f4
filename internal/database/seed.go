package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/indigo-retail/pos-api/internal/auth"
	"github.com/indigo-retail/pos-api/internal/config"
	"github.com/indigo-retail/pos-api/internal/domain"
)

// Seed inserts the initial admin user and sample products when the
// corresponding tables are empty.
func Seed(db *gorm.DB, cfg *config.SeedConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	if err := seedAdminUser(db, cfg, logger); err != nil {
		return err
	}

	return seedProducts(db, logger)
}

func seedAdminUser(db *gorm.DB, cfg *config.SeedConfig, logger *zap.Logger) error {
	var count int64
	if err := db.Model(&domain.User{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	salt, err := auth.NewSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	user := &domain.User{
		Username:     cfg.AdminUsername,
		PasswordHash: auth.HashPassword(cfg.AdminPassword, salt),
		PasswordSalt: salt,
		Role:         cfg.AdminRole,
	}

	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Seeded admin user", zap.String("username", cfg.AdminUsername))
	return nil
}

func seedProducts(db *gorm.DB, logger *zap.Logger) error {
	var count int64
	if err := db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	products := []domain.Product{
		{
			Name:        "Wireless Mouse",
			Description: "Ergonomic wireless mouse with USB receiver",
			Stock:       50,
			Price:       decimal.NewFromFloat(19.99),
		},
		{
			Name:        "Mechanical Keyboard",
			Description: "Tenkeyless mechanical keyboard with brown switches",
			Stock:       30,
			Price:       decimal.NewFromFloat(79.90),
		},
		{
			Name:        "USB-C Hub",
			Description: "7-in-1 USB-C hub with HDMI and card reader",
			Stock:       25,
			Price:       decimal.NewFromFloat(34.50),
		},
	}

	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	logger.Info("Seeded sample products", zap.Int("count", len(products)))
	return nil
}
