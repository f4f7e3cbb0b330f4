package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/indigo-retail/pos-api/internal/domain"
	"github.com/indigo-retail/pos-api/internal/mapper"
	"github.com/indigo-retail/pos-api/internal/repository"
	"github.com/indigo-retail/pos-api/internal/storage"
)

type ProductService struct {
	productRepo *repository.ProductRepository
	store       storage.Storage
	logger      *zap.Logger
}

func NewProductService(productRepo *repository.ProductRepository, store storage.Storage, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		store:       store,
		logger:      logger,
	}
}

// removeImage deletes the stored image behind a product URL. Failures
// are logged and swallowed so stale blobs never block the row change.
func (s *ProductService) removeImage(ctx context.Context, imageURL string) {
	name := storage.NameFromURL(imageURL)
	if name == "" {
		return
	}
	if err := s.store.Delete(ctx, name); err != nil {
		s.logger.Warn("failed to delete product image",
			zap.String("image_url", imageURL),
			zap.Error(err),
		)
	}
}

func (s *ProductService) Create(ctx context.Context, req *domain.CreateProductRequest) (*domain.ProductDTO, error) {
	if req.Price.IsNegative() {
		return nil, domain.ErrNegativePrice
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		Price:       req.Price,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("product created",
		zap.String("id", product.ID.String()),
		zap.String("name", product.Name),
	)

	dto := mapper.ToProductDTO(product)
	return &dto, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductDTO, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := mapper.ToProductDTO(product)
	return &dto, nil
}

func (s *ProductService) List(ctx context.Context) ([]domain.ProductDTO, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	dtos := make([]domain.ProductDTO, len(products))
	for i := range products {
		dtos[i] = mapper.ToProductDTO(&products[i])
	}
	return dtos, nil
}

// Update overwrites all mutable product fields with the request values
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProductRequest) (*domain.ProductDTO, error) {
	if req.Price.IsNegative() {
		return nil, domain.ErrNegativePrice
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldImageURL := product.ImageURL

	product.Name = req.Name
	product.Description = req.Description
	product.ImageURL = req.ImageURL
	product.Stock = req.Stock
	product.Price = req.Price

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if oldImageURL != "" && oldImageURL != product.ImageURL {
		s.removeImage(ctx, oldImageURL)
	}

	dto := mapper.ToProductDTO(product)
	return &dto, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if product.ImageURL != "" {
		s.removeImage(ctx, product.ImageURL)
	}

	s.logger.Info("product deleted", zap.String("id", id.String()))
	return nil
}
