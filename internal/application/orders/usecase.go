package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var cien = decimal.NewFromInt(100)

// OrderUseCase ventas: descuento de stock y creación/consulta de órdenes.
//
// El descuento de stock es una única sentencia condicional en la capa de
// persistencia (quantity >= vendido), de modo que dos ventas concurrentes de
// la última unidad no pueden tener éxito las dos.
type OrderUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner TxRunner, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, productRepo: productRepo, orderRepo: orderRepo}
}

// UpdateStock descuenta stock tras una venta directa y devuelve la cantidad
// restante. ErrInsufficientStock deja la cantidad intacta.
func (uc *OrderUseCase) UpdateStock(in dto.UpdateStockRequest) (*dto.UpdateStockResponse, error) {
	if in.ProductID == "" || in.Quantity == nil {
		return nil, domain.ErrMissingField
	}
	if *in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uuid.Validate(in.ProductID); err != nil {
		return nil, domain.ErrInvalidID
	}
	remaining, err := uc.productRepo.DecrementStock(in.ProductID, *in.Quantity)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateStockResponse{ProductID: in.ProductID, RemainingQuantity: remaining}, nil
}

// CreateOrder crea una orden persistida y descuenta el stock de cada línea
// dentro de una sola transacción. El total se calcula en el servidor con el
// precio y descuento vigentes del producto; cualquier línea sin stock hace
// rollback de toda la orden.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrMissingField
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if err := uuid.Validate(item.ProductID); err != nil {
			return nil, domain.ErrInvalidID
		}
	}

	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    entity.OrderStatusCompleted,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) error {
		total := decimal.Zero
		for _, item := range in.Items {
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if _, err := productRepo.DecrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
			subtotal := lineSubtotal(product.Price, product.Discount, item.Quantity)
			order.Items = append(order.Items, entity.OrderItem{
				ID:          uuid.New().String(),
				OrderID:     order.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   product.Price,
				Discount:    product.Discount,
				Subtotal:    subtotal,
			})
			total = total.Add(subtotal)
		}
		order.Total = total
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for i := range order.Items {
			if err := orderRepo.CreateItem(&order.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene una orden. Solo el dueño (o un admin) puede leerla.
func (uc *OrderUseCase) GetByID(id, requesterID, requesterRole string) (*dto.OrderResponse, error) {
	order, err := uc.getOrder(id, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// ListByUser historial de órdenes del usuario, más recientes primero.
func (uc *OrderUseCase) ListByUser(userID string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	list, err := uc.orderRepo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *OrderUseCase) getOrder(id, requesterID, requesterRole string) (*entity.Order, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.UserID != requesterID && requesterRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// lineSubtotal precio * cantidad con el descuento porcentual aplicado,
// redondeado a 2 decimales.
func lineSubtotal(price, discount decimal.Decimal, quantity int) decimal.Decimal {
	factor := cien.Sub(discount).Div(cien)
	return price.Mul(factor).Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			Subtotal:    it.Subtotal,
		})
	}
	return &dto.OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Total:     o.Total,
		Status:    o.Status,
		Date:      o.Date,
		Items:     items,
		CreatedAt: o.CreatedAt,
	}
}
