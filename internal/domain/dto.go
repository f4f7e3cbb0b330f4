package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ProductDTO is the API representation of a product
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// CreateProductRequest creates a product
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,max=500"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductRequest overwrites all mutable product fields
type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,max=500"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Price       decimal.Decimal `json:"price"`
}

// SaleItemRequest is one requested line item
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// CreateSaleRequest creates a sale with its line items
type CreateSaleRequest struct {
	SaleDate time.Time         `json:"saleDate"`
	Items    []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemDTO is the API representation of a sale line item
type SaleItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// SaleDTO is the API representation of a sale
type SaleDTO struct {
	ID       uuid.UUID       `json:"id"`
	SaleDate string          `json:"saleDate"`
	Total    decimal.Decimal `json:"total"`
	Items    []SaleItemDTO   `json:"items"`
}

// SalesReportDTO aggregates sales over an inclusive date range
type SalesReportDTO struct {
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
	TotalSales   int             `json:"totalSales"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	Sales        []SaleDTO       `json:"sales"`
}

// UploadResponse carries the public URL of an uploaded image
type UploadResponse struct {
	URL string `json:"url"`
}
