package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden/factura de venta.
const (
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order representa una venta persistida (cabecera + líneas).
type Order struct {
	ID        string
	UserID    string
	Total     decimal.Decimal
	Status    string // completed, cancelled
	Date      time.Time
	Items     []OrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem línea de una orden. UnitPrice y Discount se capturan del producto
// en el momento de la venta para que la orden quede inmutable ante cambios de precio.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal // porcentaje aplicado en la venta
	Subtotal    decimal.Decimal
}
