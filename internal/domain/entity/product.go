package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultImageURL imagen de relleno cuando el producto no tiene foto propia.
const DefaultImageURL = "https://placehold.co/600x400?text=No+Image"

// Product representa un producto del catálogo.
// Quantity es la cantidad de stock autoritativa; se descuenta con una
// actualización condicional en la capa de persistencia, nunca con read-then-write.
// Barcode es opcional; cuando está presente es único a nivel global.
type Product struct {
	ID              string
	ShopkeeperID    string
	SKU             string
	Barcode         string // vacío = sin código de barras
	Name            string
	Description     string
	Category        string
	Price           decimal.Decimal // >= 0
	Quantity        int             // >= 0, stock actual
	Discount        decimal.Decimal // porcentaje, 0..100
	ExpiryDate      *time.Time
	ManufactureDate *time.Time
	ImageURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
