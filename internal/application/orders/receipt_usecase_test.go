package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// fakeUserRepo solo lo que ReceiptUseCase necesita.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error { return nil }

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }

func (r *fakeUserRepo) GetByUsername(name string) (*entity.User, error) { return nil, nil }

func (r *fakeUserRepo) Update(u *entity.User) error { return nil }

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, nil
}

// fakeGenerator registra la orden recibida y devuelve bytes fijos.
type fakeGenerator struct {
	lastOrder *entity.Order
	lastBuyer *entity.User
}

func (g *fakeGenerator) GenerateReceiptPDF(_ context.Context, order *entity.Order, buyer *entity.User) ([]byte, error) {
	g.lastOrder = order
	g.lastBuyer = buyer
	return []byte("%PDF-fake"), nil
}

func TestReceipt_GeneraPDFParaElDueno(t *testing.T) {
	uc, productRepo, _ := newTestUseCase()
	productID := seedProduct(productRepo, "Café", 3000, 5, 0)

	created, err := uc.CreateOrder(context.Background(), buyerID, dto.CreateOrderRequest{
		Items: []dto.CreateOrderItemRequest{{ProductID: productID, Quantity: 2}},
	})
	require.NoError(t, err)

	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		buyerID: {ID: buyerID, Username: "maria", Email: "maria@tienda.com"},
	}}
	gen := &fakeGenerator{}
	receiptUC := NewReceiptUseCase(uc, userRepo, gen)

	pdfBytes, err := receiptUC.Receipt(context.Background(), created.ID, buyerID, entity.RoleCustomer)
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-fake"), pdfBytes)
	require.NotNil(t, gen.lastOrder)
	assert.Equal(t, created.ID, gen.lastOrder.ID)
	assert.Equal(t, "maria", gen.lastBuyer.Username)
}

func TestReceipt_OtroUsuario_RetornaForbidden(t *testing.T) {
	uc, productRepo, _ := newTestUseCase()
	productID := seedProduct(productRepo, "Café", 3000, 5, 0)

	created, err := uc.CreateOrder(context.Background(), buyerID, dto.CreateOrderRequest{
		Items: []dto.CreateOrderItemRequest{{ProductID: productID, Quantity: 1}},
	})
	require.NoError(t, err)

	receiptUC := NewReceiptUseCase(uc, &fakeUserRepo{users: map[string]*entity.User{}}, &fakeGenerator{})

	_, err = receiptUC.Receipt(context.Background(), created.ID, ownerID, entity.RoleCustomer)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReceipt_OrdenInexistente_RetornaNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase()
	receiptUC := NewReceiptUseCase(uc, &fakeUserRepo{users: map[string]*entity.User{}}, &fakeGenerator{})

	_, err := receiptUC.Receipt(context.Background(), uuid.New().String(), buyerID, entity.RoleCustomer)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
