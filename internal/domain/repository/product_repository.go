package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateImageURL actualiza solo la URL de imagen (usado por el upload).
	UpdateImageURL(id, imageURL string) error
	// DecrementStock descuenta quantity de forma atómica y condicional
	// (solo si el stock actual alcanza) y devuelve la cantidad restante.
	// Retorna domain.ErrInsufficientStock si no alcanza y domain.ErrNotFound
	// si el producto no existe.
	DecrementStock(id string, quantity int) (remaining int, err error)
	Delete(id string) error
}
