package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-catalog/internal/core/ports"
	"github.com/avatarctic/storefront-catalog/internal/infrastructure/db"
)

// ProductRepository implements the product repository interface
type ProductRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(database *db.Database, logger *logrus.Logger) ports.ProductRepository {
	return &ProductRepository{
		db:     database,
		logger: logger,
	}
}

// ListAll retrieves the entire product dataset ordered by creation time
// descending. The catalog cache paginates over this in memory.
func (r *ProductRepository) ListAll(ctx context.Context) ([]*catalog.Product, error) {
	var products []*catalog.Product
	query := `
		SELECT id, name, description, price, currency, stock, category_id, on_sale, featured, is_new, images, created_at, updated_at
		FROM products
		ORDER BY created_at DESC`

	err := r.db.DB.SelectContext(ctx, &products, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	query := `
		SELECT id, name, description, price, currency, stock, category_id, on_sale, featured, is_new, images, created_at, updated_at
		FROM products
		WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}

	return &product, nil
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, currency, stock, category_id, on_sale, featured, is_new, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.DB.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Currency, p.Stock, p.CategoryID,
		p.OnSale, p.Featured, p.IsNew, p.Images, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update updates an existing product
func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, currency = $5, stock = $6,
		    category_id = $7, on_sale = $8, featured = $9, is_new = $10, images = $11, updated_at = $12
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Currency, p.Stock, p.CategoryID,
		p.OnSale, p.Featured, p.IsNew, p.Images, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", catalog.ErrProductNotFound, p.ID)
	}

	return nil
}

// Delete deletes a product by ID
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", catalog.ErrProductNotFound, id)
	}

	return nil
}
