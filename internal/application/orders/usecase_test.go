package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateImageURL(id, imageURL string) error { return nil }

// DecrementStock reproduce la semántica condicional del UPDATE en Postgres:
// solo descuenta si el stock alcanza, si no deja la cantidad intacta.
func (r *fakeProductRepo) DecrementStock(id string, quantity int) (int, error) {
	p, ok := r.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if p.Quantity < quantity {
		return 0, domain.ErrInsufficientStock
	}
	p.Quantity -= quantity
	return p.Quantity, nil
}

func (r *fakeProductRepo) Delete(id string) error { return nil }

type fakeOrderRepo struct {
	orders map[string]*entity.Order
	items  map[string][]entity.OrderItem // por orderID
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[string]*entity.Order{},
		items:  map[string][]entity.OrderItem{},
	}
}

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	cp := *o
	cp.Items = nil
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) CreateItem(it *entity.OrderItem) error {
	r.items[it.OrderID] = append(r.items[it.OrderID], *it)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), r.items[id]...)
	return &cp, nil
}

func (r *fakeOrderRepo) ListByUser(userID string, limit, offset int) ([]*entity.Order, error) {
	out := []*entity.Order{}
	for id, o := range r.orders {
		if o.UserID == userID {
			cp := *o
			cp.Items = append([]entity.OrderItem(nil), r.items[id]...)
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta fn sobre los fakes y restaura el estado si fn falla,
// imitando el rollback de la transacción real.
type fakeTxRunner struct {
	productRepo *fakeProductRepo
	orderRepo   *fakeOrderRepo
}

func (tx *fakeTxRunner) Run(_ context.Context, fn func(repository.OrderRepository, repository.ProductRepository) error) error {
	productsBefore := map[string]entity.Product{}
	for id, p := range tx.productRepo.products {
		productsBefore[id] = *p
	}
	ordersBefore := len(tx.orderRepo.orders)

	if err := fn(tx.orderRepo, tx.productRepo); err != nil {
		// rollback
		tx.productRepo.products = map[string]*entity.Product{}
		for id := range productsBefore {
			cp := productsBefore[id]
			tx.productRepo.products[id] = &cp
		}
		if len(tx.orderRepo.orders) != ordersBefore {
			tx.orderRepo.orders = map[string]*entity.Order{}
			tx.orderRepo.items = map[string][]entity.OrderItem{}
		}
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	buyerID = "00000000-0000-0000-0000-0000000000bb"
	ownerID = "00000000-0000-0000-0000-0000000000cc"
)

func newTestUseCase() (*OrderUseCase, *fakeProductRepo, *fakeOrderRepo) {
	productRepo := newFakeProductRepo()
	orderRepo := newFakeOrderRepo()
	tx := &fakeTxRunner{productRepo: productRepo, orderRepo: orderRepo}
	return NewOrderUseCase(tx, productRepo, orderRepo), productRepo, orderRepo
}

func seedProduct(repo *fakeProductRepo, name string, price float64, quantity int, discount int64) string {
	id := uuid.New().String()
	repo.products[id] = &entity.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromFloat(price),
		Quantity: quantity,
		Discount: decimal.NewFromInt(discount),
	}
	return id
}

func intPtr(n int) *int { return &n }

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStock
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStock_DescuentaYDevuelveRestante(t *testing.T) {
	uc, productRepo, _ := newTestUseCase()
	id := seedProduct(productRepo, "Pan", 500, 10, 0)

	out, err := uc.UpdateStock(dto.UpdateStockRequest{ProductID: id, Quantity: intPtr(3)})
	require.NoError(t, err)

	assert.Equal(t, 7, out.RemainingQuantity)
	assert.Equal(t, 7, productRepo.products[id].Quantity)
}

func TestUpdateStock_CantidadExacta_DejaCero(t *testing.T) {
	uc, productRepo, _ := newTestUseCase()
	id := seedProduct(productRepo, "Pan", 500, 4, 0)

	out, err := uc.UpdateStock(dto.UpdateStockRequest{ProductID: id, Quantity: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 0, out.RemainingQuantity)
}

func TestUpdateStock_StockInsuficiente_NoModificaCantidad(t *testing.T) {
	uc, productRepo, _ := newTestUseCase()
	id := seedProduct(productRepo, "Pan", 500, 2, 0)

	_, err := uc.UpdateStock(dto.UpdateStockRequest{ProductID: id, Quantity: intPtr(5)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, productRepo.products[id].Quantity, "un descuento fallido no toca el stock")
}

func TestUpdateStock_Validaciones(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.UpdateStock(dto.UpdateStockRequest{ProductID: "", Quantity: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = uc.UpdateStock(dto.UpdateStockRequest{ProductID: uuid.New().String(), Quantity: nil})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = uc.UpdateStock(dto.UpdateStockRequest{ProductID: uuid.New().String(), Quantity: intPtr(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateStock(dto.UpdateStockRequest{ProductID: "no-es-uuid", Quantity: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

// Escenario completo: 5 lapiceros, se venden 3, quedan 2; intentar vender 5
// falla y el stock sigue en 2.
func TestUpdateStock_EscenarioLapiceros(t *testing.T) {
	uc, productRepo, _ := newTestUseCase()
	id := seedProduct(productRepo, "Lapicero", 800, 5, 0)

	out, err := uc.UpdateStock(dto.UpdateStockRequest{ProductID: id, Quantity: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 2, out.RemainingQuantity)

	_, err = uc.UpdateStock(dto.UpdateStockRequest{ProductID: id, Quantity: intPtr(5)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, productRepo.products[id].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_CalculaTotalConDescuento(t *testing.T) {
	uc, productRepo, _ := newTestUseCase()
	// 2 x 1000 con 10% = 1800; 1 x 500 sin descuento = 500; total 2300.
	idArroz := seedProduct(productRepo, "Arroz", 1000, 10, 10)
	idPan := seedProduct(productRepo, "Pan", 500, 5, 0)

	out, err := uc.CreateOrder(context.Background(), buyerID, dto.CreateOrderRequest{
		Items: []dto.CreateOrderItemRequest{
			{ProductID: idArroz, Quantity: 2},
			{ProductID: idPan, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, out.Total.Equal(decimal.NewFromInt(2300)),
		"total esperado 2300, obtenido %s", out.Total)
	assert.Equal(t, entity.OrderStatusCompleted, out.Status)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].Subtotal.Equal(decimal.NewFromInt(1800)))

	// El stock quedó descontado.
	assert.Equal(t, 8, productRepo.products[idArroz].Quantity)
	assert.Equal(t, 4, productRepo.products[idPan].Quantity)
}

func TestCreateOrder_LineaSinStock_RollbackDeTodaLaOrden(t *testing.T) {
	uc, productRepo, orderRepo := newTestUseCase()
	idArroz := seedProduct(productRepo, "Arroz", 1000, 10, 0)
	idPan := seedProduct(productRepo, "Pan", 500, 1, 0)

	_, err := uc.CreateOrder(context.Background(), buyerID, dto.CreateOrderRequest{
		Items: []dto.CreateOrderItemRequest{
			{ProductID: idArroz, Quantity: 2},
			{ProductID: idPan, Quantity: 5}, // no alcanza
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback: ni orden persistida ni stock descontado en la primera línea.
	assert.Empty(t, orderRepo.orders)
	assert.Equal(t, 10, productRepo.products[idArroz].Quantity)
	assert.Equal(t, 1, productRepo.products[idPan].Quantity)
}

func TestCreateOrder_ProductoInexistente_RetornaErrNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.CreateOrder(context.Background(), buyerID, dto.CreateOrderRequest{
		Items: []dto.CreateOrderItemRequest{{ProductID: uuid.New().String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_SinLineas_RetornaErrMissingField(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.CreateOrder(context.Background(), buyerID, dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestCreateOrder_PersisteOrdenYLineas(t *testing.T) {
	uc, productRepo, orderRepo := newTestUseCase()
	id := seedProduct(productRepo, "Leche", 2000, 6, 0)

	out, err := uc.CreateOrder(context.Background(), buyerID, dto.CreateOrderRequest{
		Items: []dto.CreateOrderItemRequest{{ProductID: id, Quantity: 2}},
	})
	require.NoError(t, err)

	stored, err := orderRepo.GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, buyerID, stored.UserID)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Leche", stored.Items[0].ProductName)
	assert.True(t, stored.Items[0].UnitPrice.Equal(decimal.NewFromInt(2000)),
		"la línea congela el precio unitario vigente")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetByID / ListByUser — control de acceso
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrder_SoloDuenoOAdmin(t *testing.T) {
	uc, productRepo, _ := newTestUseCase()
	id := seedProduct(productRepo, "Café", 3000, 5, 0)

	out, err := uc.CreateOrder(context.Background(), buyerID, dto.CreateOrderRequest{
		Items: []dto.CreateOrderItemRequest{{ProductID: id, Quantity: 1}},
	})
	require.NoError(t, err)

	// El dueño puede leerla.
	_, err = uc.GetByID(out.ID, buyerID, entity.RoleCustomer)
	assert.NoError(t, err)

	// Un admin también.
	_, err = uc.GetByID(out.ID, ownerID, entity.RoleAdmin)
	assert.NoError(t, err)

	// Otro usuario no.
	_, err = uc.GetByID(out.ID, ownerID, entity.RoleCustomer)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListByUser_SoloOrdenesPropias(t *testing.T) {
	uc, productRepo, _ := newTestUseCase()
	id := seedProduct(productRepo, "Café", 3000, 10, 0)

	_, err := uc.CreateOrder(context.Background(), buyerID, dto.CreateOrderRequest{
		Items: []dto.CreateOrderItemRequest{{ProductID: id, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = uc.CreateOrder(context.Background(), ownerID, dto.CreateOrderRequest{
		Items: []dto.CreateOrderItemRequest{{ProductID: id, Quantity: 1}},
	})
	require.NoError(t, err)

	out, err := uc.ListByUser(buyerID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, buyerID, out.Items[0].UserID)
}

// ──────────────────────────────────────────────────────────────────────────────
// lineSubtotal
// ──────────────────────────────────────────────────────────────────────────────

func TestLineSubtotal_RedondeaADosDecimales(t *testing.T) {
	// 999.99 con 33% de descuento x 3 = 2009.9799 → 2009.98
	got := lineSubtotal(decimal.NewFromFloat(999.99), decimal.NewFromInt(33), 3)
	assert.True(t, got.Equal(decimal.NewFromFloat(2009.98)), "obtenido %s", got)
}
