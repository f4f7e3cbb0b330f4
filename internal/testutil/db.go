// Package testutil provides helpers for database-backed tests. Tests
// connect to a real PostgreSQL instance because the sale workflow
// relies on row locking that in-memory databases do not support.
package testutil

import (
	"fmt"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/indigo-retail/pos-api/internal/domain"
)

// SetupTestDB creates a connection to the test PostgreSQL database.
// It uses environment variables or falls back to docker-compose defaults.
func SetupTestDB(t *testing.T) *gorm.DB {
	host := getEnvOrDefault("DATABASE_HOST", "localhost")
	port := getEnvOrDefault("DATABASE_PORT", "5432")
	user := getEnvOrDefault("DATABASE_USER", "pos_user")
	password := getEnvOrDefault("DATABASE_PASSWORD", "pos_password")
	dbname := getEnvOrDefault("DATABASE_NAME", "pos")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to test database. Ensure PostgreSQL is running.")

	err = db.AutoMigrate(&domain.User{}, &domain.Product{}, &domain.Sale{}, &domain.SaleItem{})
	require.NoError(t, err)

	return db
}

// CleanupTestData cleans up test data from all tables.
// This should be called after tests to ensure a clean state.
func CleanupTestData(t *testing.T, db *gorm.DB) {
	// Delete in order to respect foreign key constraints
	tables := []string{
		"sale_items",
		"sales",
		"products",
		"users",
	}

	for _, table := range tables {
		err := db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id IS NOT NULL", table)).Error
		if err != nil {
			t.Logf("Note: Could not clean table %s: %v", table, err)
		}
	}
}

// CreateTestProduct creates a product with the given stock and price
func CreateTestProduct(t *testing.T, db *gorm.DB, name string, stock int, price string) *domain.Product {
	product := &domain.Product{
		Name:        name,
		Description: "test product",
		Stock:       stock,
		Price:       decimal.RequireFromString(price),
	}
	err := db.Create(product).Error
	require.NoError(t, err)
	return product
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
