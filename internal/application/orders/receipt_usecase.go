package orders

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo PDF de una orden.
type ReceiptUseCase struct {
	orderUC   *OrderUseCase
	userRepo  repository.UserRepository
	generator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orderUC *OrderUseCase, userRepo repository.UserRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orderUC: orderUC, userRepo: userRepo, generator: generator}
}

// Receipt devuelve los bytes del PDF. Mismas reglas de acceso que GetByID.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, orderID, requesterID, requesterRole string) ([]byte, error) {
	order, err := uc.orderUC.getOrder(orderID, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}
	buyer, err := uc.userRepo.GetByID(order.UserID)
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateReceiptPDF(ctx, order, buyer)
}
