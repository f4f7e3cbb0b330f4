package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/indigo-retail/pos-api/internal/domain"
	"github.com/indigo-retail/pos-api/internal/mapper"
	"github.com/indigo-retail/pos-api/internal/repository"
)

type SaleService struct {
	saleRepo *repository.SaleRepository
	db       *gorm.DB
	logger   *zap.Logger
}

func NewSaleService(saleRepo *repository.SaleRepository, db *gorm.DB, logger *zap.Logger) *SaleService {
	return &SaleService{
		saleRepo: saleRepo,
		db:       db,
		logger:   logger,
	}
}

// Create records a sale and decrements product stock atomically. Each
// referenced product row is locked for the duration of the transaction
// so concurrent sales cannot oversell the same stock.
func (s *SaleService) Create(ctx context.Context, req *domain.CreateSaleRequest) (*domain.SaleDTO, error) {
	saleDate := req.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now().UTC()
	}

	sale := &domain.Sale{
		SaleDate: saleDate,
		Total:    decimal.Zero,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := make([]domain.SaleItem, 0, len(req.Items))
		total := decimal.Zero

		for _, itemReq := range req.Items {
			var product domain.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", itemReq.ProductID).
				First(&product).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrProductNotFound
				}
				return fmt.Errorf("failed to load product: %w", err)
			}

			if product.Stock < itemReq.Quantity {
				return &domain.InsufficientStockError{
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   itemReq.Quantity,
				}
			}

			err = tx.Model(&domain.Product{}).
				Where("id = ?", product.ID).
				Update("stock", gorm.Expr("stock - ?", itemReq.Quantity)).Error
			if err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}

			linePrice := product.Price.Mul(decimal.NewFromInt(int64(itemReq.Quantity)))
			items = append(items, domain.SaleItem{
				ProductID:  product.ID,
				Quantity:   itemReq.Quantity,
				UnitPrice:  product.Price,
				TotalPrice: linePrice,
			})
			total = total.Add(linePrice)
		}

		sale.Total = total
		sale.Items = items

		if err := tx.Create(sale).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale created",
		zap.String("id", sale.ID.String()),
		zap.Int("items", len(sale.Items)),
		zap.String("total", sale.Total.String()),
	)

	// Reload with product names for the response
	created, err := s.saleRepo.GetByID(ctx, sale.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload sale: %w", err)
	}

	dto := mapper.ToSaleDTO(created)
	return &dto, nil
}

func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SaleDTO, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := mapper.ToSaleDTO(sale)
	return &dto, nil
}

func (s *SaleService) List(ctx context.Context) ([]domain.SaleDTO, error) {
	sales, err := s.saleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	dtos := make([]domain.SaleDTO, len(sales))
	for i := range sales {
		dtos[i] = mapper.ToSaleDTO(&sales[i])
	}
	return dtos, nil
}

// Delete removes a sale and restores the stock its items consumed.
// Sale items are removed by the database cascade.
func (s *SaleService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sale domain.Sale
		err := tx.Preload("Items").Where("id = ?", id).First(&sale).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrSaleNotFound
			}
			return fmt.Errorf("failed to load sale: %w", err)
		}

		for _, item := range sale.Items {
			err = tx.Model(&domain.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error
			if err != nil {
				return fmt.Errorf("failed to restore stock: %w", err)
			}
		}

		if err := tx.Delete(&domain.Sale{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("sale deleted", zap.String("id", id.String()))
	return nil
}

// Report aggregates sales over the inclusive date range [start, end]
func (s *SaleService) Report(ctx context.Context, start, end time.Time) (*domain.SalesReportDTO, error) {
	sales, err := s.saleRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales for report: %w", err)
	}

	report := mapper.ToSalesReportDTO(start, end, sales)
	return &report, nil
}
