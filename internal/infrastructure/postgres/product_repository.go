package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, shopkeeper_id, sku, barcode, name, description, category, price, quantity, discount, expiry_date, manufacture_date, image_url, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Barcode vacío se guarda como NULL para
// que el índice único solo aplique a códigos presentes.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.ShopkeeperID, product.SKU, nullIfEmpty(product.Barcode),
		product.Name, product.Description, product.Category,
		product.Price, product.Quantity, product.Discount,
		product.ExpiryDate, product.ManufactureDate, product.ImageURL,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if uniqueConstraint(err) == "products_barcode_key" {
			return domain.ErrDuplicateBarcode
		}
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.findOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	return r.findOne(`SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
}

func (r *ProductRepo) findOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	var barcode *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.ShopkeeperID, &p.SKU, &barcode, &p.Name, &p.Description, &p.Category,
		&p.Price, &p.Quantity, &p.Discount, &p.ExpiryDate, &p.ManufactureDate, &p.ImageURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	return &p, nil
}

// List lista el catálogo con paginación, más recientes primero.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var barcode *string
		if err := rows.Scan(&p.ID, &p.ShopkeeperID, &p.SKU, &barcode, &p.Name, &p.Description, &p.Category,
			&p.Price, &p.Quantity, &p.Discount, &p.ExpiryDate, &p.ManufactureDate, &p.ImageURL,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if barcode != nil {
			p.Barcode = *barcode
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables del producto en una sola sentencia.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, price = $5, quantity = $6,
		    discount = $7, image_url = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Category,
		product.Price, product.Quantity, product.Discount, product.ImageURL, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateImageURL actualiza solo la URL de imagen (usado por el upload).
func (r *ProductRepo) UpdateImageURL(id, imageURL string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET image_url = $2, updated_at = now() WHERE id = $1`,
		id, imageURL,
	)
	if err != nil {
		return fmt.Errorf("update product image: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock descuenta stock con una actualización condicional atómica:
// solo toca la fila si la cantidad actual alcanza, eliminando la ventana
// read-then-write entre ventas concurrentes.
func (r *ProductRepo) DecrementStock(id string, quantity int) (int, error) {
	query := `
		UPDATE products
		SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2
		RETURNING quantity`
	var remaining int
	err := r.q.QueryRow(context.Background(), query, id, quantity).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}
	// Sin fila afectada: distinguir producto inexistente de stock insuficiente.
	product, err := r.GetByID(id)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrInsufficientStock
}

// Delete elimina un producto por ID (hard delete).
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
