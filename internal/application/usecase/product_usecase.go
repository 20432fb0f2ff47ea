package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var discountMax = decimal.NewFromInt(100)

// ProductUseCase casos de uso CRUD del catálogo. El stock se descuenta vía
// el caso de uso de órdenes (actualización condicional); aquí solo se edita
// directamente por el tendero.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto del catálogo con el tendero dueño adjunto.
// Campos requeridos: name, description, price, quantity, category, sku.
// El barcode es opcional pero único cuando se envía.
func (uc *ProductUseCase) Create(shopkeeperID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Description == "" || in.Category == "" || in.SKU == "" ||
		in.Price == nil || in.Quantity == nil {
		return nil, domain.ErrMissingField
	}
	if in.Price.IsNegative() || *in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := validateDiscount(in.Discount); err != nil {
		return nil, err
	}
	if in.Barcode != "" {
		existing, err := uc.repo.GetByBarcode(in.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicateBarcode
		}
	}
	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = entity.DefaultImageURL
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		ShopkeeperID:    shopkeeperID,
		SKU:             in.SKU,
		Barcode:         in.Barcode,
		Name:            in.Name,
		Description:     in.Description,
		Category:        in.Category,
		Price:           *in.Price,
		Quantity:        *in.Quantity,
		Discount:        in.Discount,
		ExpiryDate:      in.ExpiryDate,
		ManufactureDate: in.ManufactureDate,
		ImageURL:        imageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. ErrInvalidID para un id malformado.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista el catálogo con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update aplica un patch al producto: solo los campos presentes se validan
// y aplican, en un único UPDATE.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Discount != nil {
		if err := validateDiscount(*in.Discount); err != nil {
			return nil, err
		}
		product.Discount = *in.Discount
	}
	if in.Name != nil && *in.Name != "" {
		product.Name = *in.Name
	}
	if in.Description != nil && *in.Description != "" {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Quantity = *in.Quantity
	}
	if in.Category != nil && *in.Category != "" {
		product.Category = *in.Category
	}
	if in.ImageURL != nil && *in.ImageURL != "" {
		product.ImageURL = *in.ImageURL
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateImage reemplaza la URL de imagen del producto (tras subir el archivo).
func (uc *ProductUseCase) UpdateImage(id, imageURL string) (*dto.ProductResponse, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	if imageURL == "" {
		return nil, domain.ErrMissingField
	}
	if err := uc.repo.UpdateImageURL(id, imageURL); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Delete borra el producto de forma definitiva (hard delete).
func (uc *ProductUseCase) Delete(id string) error {
	if err := uuid.Validate(id); err != nil {
		return domain.ErrInvalidID
	}
	return uc.repo.Delete(id)
}

// validateDiscount verifica el rango permitido [0, 100].
func validateDiscount(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(discountMax) {
		return domain.ErrInvalidDiscount
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		ShopkeeperID:    p.ShopkeeperID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Quantity:        p.Quantity,
		Category:        p.Category,
		SKU:             p.SKU,
		Barcode:         p.Barcode,
		Discount:        p.Discount,
		ExpiryDate:      p.ExpiryDate,
		ManufactureDate: p.ManufactureDate,
		ImageURL:        p.ImageURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
