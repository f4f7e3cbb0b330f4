// Package mapper converts domain models to API DTOs.
package mapper

import (
	"time"

	"github.com/indigo-retail/pos-api/internal/domain"
)

const timestampFormat = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

func ToProductDTO(product *domain.Product) domain.ProductDTO {
	return domain.ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		ImageURL:    product.ImageURL,
		Stock:       product.Stock,
		Price:       product.Price,
		CreatedAt:   formatTime(product.CreatedAt),
		UpdatedAt:   formatTime(product.UpdatedAt),
	}
}

func ToSaleItemDTO(item *domain.SaleItem) domain.SaleItemDTO {
	dto := domain.SaleItemDTO{
		ID:         item.ID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		TotalPrice: item.TotalPrice,
	}
	if item.Product != nil {
		dto.ProductName = item.Product.Name
	}
	return dto
}

func ToSaleDTO(sale *domain.Sale) domain.SaleDTO {
	items := make([]domain.SaleItemDTO, len(sale.Items))
	for i := range sale.Items {
		items[i] = ToSaleItemDTO(&sale.Items[i])
	}

	return domain.SaleDTO{
		ID:       sale.ID,
		SaleDate: formatTime(sale.SaleDate),
		Total:    sale.Total,
		Items:    items,
	}
}

func ToSalesReportDTO(start, end time.Time, sales []domain.Sale) domain.SalesReportDTO {
	report := domain.SalesReportDTO{
		StartDate: start.UTC().Format("2006-01-02"),
		EndDate:   end.UTC().Format("2006-01-02"),
		Sales:     make([]domain.SaleDTO, len(sales)),
	}

	for i := range sales {
		report.Sales[i] = ToSaleDTO(&sales[i])
		report.TotalRevenue = report.TotalRevenue.Add(sales[i].Total)
	}
	report.TotalSales = len(sales)

	return report
}
