package orders

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repos atados a una misma transacción.
// Lo implementa postgres.TxRunner; fn ve Commit si retorna nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReceiptPDFGenerator genera la representación imprimible de una orden.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, order *entity.Order, buyer *entity.User) ([]byte, error)
}
