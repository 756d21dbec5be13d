package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nuttaponsrpn/Kiki-POS/internal/database"
	"github.com/nuttaponsrpn/Kiki-POS/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access. Every
// method is a single remote call against the products table; when the store
// client is disabled the methods no-op without error.
type ProductRepository interface {
	Enabled() bool
	List(ctx context.Context) ([]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, updates domain.ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetStock(ctx context.Context, id uuid.UUID) (int, error)
	SetStock(ctx context.Context, id uuid.UUID, stock int) error
}

type productRepository struct {
	store *database.Client
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(store *database.Client) ProductRepository {
	return &productRepository{store: store}
}

const productColumns = "id, name, price, stock, category, image_url, barcode, created_at"

// Enabled reports whether the backing store client is configured
func (r *productRepository) Enabled() bool {
	return r.store.Enabled()
}

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.Category,
		&product.ImageURL,
		&product.Barcode,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// List retrieves all products ordered by name
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	if !r.store.Enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY name ASC`, productColumns)

	rows, err := r.store.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Create inserts a new product and returns the persisted row
func (r *productRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if !r.store.Enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`
		INSERT INTO products (id, name, price, stock, category, image_url, barcode)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`, productColumns)

	row := r.store.DB().QueryRowContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Price,
		product.Stock,
		product.Category,
		product.ImageURL,
		product.Barcode,
	)

	created, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return created, nil
}

// Update applies the non-nil fields of updates and returns the updated row
func (r *productRepository) Update(ctx context.Context, id uuid.UUID, updates domain.ProductUpdate) (*domain.Product, error) {
	if !r.store.Enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`
		UPDATE products
		SET name = COALESCE($2, name),
		    price = COALESCE($3, price),
		    stock = COALESCE($4, stock),
		    category = COALESCE($5, category),
		    image_url = COALESCE($6, image_url),
		    barcode = COALESCE($7, barcode)
		WHERE id = $1
		RETURNING %s
	`, productColumns)

	row := r.store.DB().QueryRowContext(
		ctx,
		query,
		id,
		updates.Name,
		updates.Price,
		updates.Stock,
		updates.Category,
		updates.ImageURL,
		updates.Barcode,
	)

	updated, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return updated, nil
}

// Delete removes a product from the store
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if !r.store.Enabled() {
		return nil
	}

	query := `DELETE FROM products WHERE id = $1`

	result, err := r.store.DB().ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if !r.store.Enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product, err := scanProduct(r.store.DB().QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// GetStock reads the current stock of a product
func (r *productRepository) GetStock(ctx context.Context, id uuid.UUID) (int, error) {
	if !r.store.Enabled() {
		return 0, nil
	}

	query := `SELECT stock FROM products WHERE id = $1`

	var stock int
	err := r.store.DB().QueryRowContext(ctx, query, id).Scan(&stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrProductNotFound
		}
		return 0, fmt.Errorf("failed to get product stock: %w", err)
	}

	return stock, nil
}

// SetStock writes an absolute stock value. Callers do read-then-write; there
// is no store-side locking, so concurrent writers can lose updates.
func (r *productRepository) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	if !r.store.Enabled() {
		return nil
	}

	query := `UPDATE products SET stock = $2 WHERE id = $1`

	result, err := r.store.DB().ExecContext(ctx, query, id, stock)
	if err != nil {
		return fmt.Errorf("failed to set product stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
