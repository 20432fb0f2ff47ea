package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Price y Discount se decodifican como decimal; un valor no numérico
// falla el parseo del body antes de llegar al use case.
type CreateProductRequest struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	Quantity        *int             `json:"quantity"`
	Category        string           `json:"category"`
	SKU             string           `json:"sku"`
	Barcode         string           `json:"barcode"`
	Discount        decimal.Decimal  `json:"discount"`
	ExpiryDate      *time.Time       `json:"expiryDate"`
	ManufactureDate *time.Time       `json:"manufactureDate"`
	ImageURL        string           `json:"imageUrl"`
}

// UpdateProductRequest patch de producto: cada campo presente se valida y
// aplica de forma independiente en un único UPDATE.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	Category    *string          `json:"category"`
	Discount    *decimal.Decimal `json:"discount"`
	ImageURL    *string          `json:"imageUrl"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string          `json:"id"`
	ShopkeeperID    string          `json:"shopkeeperId"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	Category        string          `json:"category"`
	SKU             string          `json:"sku"`
	Barcode         string          `json:"barcode,omitempty"`
	Discount        decimal.Decimal `json:"discount"`
	ExpiryDate      *time.Time      `json:"expiryDate,omitempty"`
	ManufactureDate *time.Time      `json:"manufactureDate,omitempty"`
	ImageURL        string          `json:"imageUrl"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
