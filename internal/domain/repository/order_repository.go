package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// OrderRepository puerto de persistencia para órdenes/facturas de venta.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Order, error)
}
