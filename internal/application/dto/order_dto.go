package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateStockRequest entrada para descontar stock tras una venta.
// Quantity es puntero para distinguir "ausente" de cero.
type UpdateStockRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// UpdateStockResponse cantidad restante tras el descuento.
type UpdateStockResponse struct {
	ProductID         string `json:"productId"`
	RemainingQuantity int    `json:"remainingQuantity"`
}

// CreateOrderItemRequest línea de una orden a crear.
type CreateOrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest entrada para crear una orden/factura de venta.
type CreateOrderRequest struct {
	Items []CreateOrderItemRequest `json:"items"`
	Date  *time.Time               `json:"date"`
}

// OrderItemResponse línea de una orden.
type OrderItemResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de una orden persistida.
type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Total     decimal.Decimal     `json:"total"`
	Status    string              `json:"status"`
	Date      time.Time           `json:"date"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"createdAt"`
}

// OrderListResponse historial de órdenes de un usuario.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
