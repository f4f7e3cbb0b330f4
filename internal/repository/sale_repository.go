package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/indigo-retail/pos-api/internal/domain"
)

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	var sale domain.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("id = ?", id).
		First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}

func (r *SaleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	var sales []domain.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}

// ListByDateRange returns sales whose sale date falls within the
// inclusive range [start, end].
func (r *SaleRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Sale, error) {
	var sales []domain.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("sale_date >= ? AND sale_date <= ?", start, end).
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}
