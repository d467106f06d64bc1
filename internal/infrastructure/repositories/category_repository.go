package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-catalog/internal/core/ports"
	"github.com/avatarctic/storefront-catalog/internal/infrastructure/db"
)

// CategoryRepository implements the category repository interface
type CategoryRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(database *db.Database, logger *logrus.Logger) ports.CategoryRepository {
	return &CategoryRepository{
		db:     database,
		logger: logger,
	}
}

// ListAll retrieves all categories in display order.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]*catalog.Category, error) {
	var categories []*catalog.Category
	query := `
		SELECT id, name, icon, display_order, created_at, updated_at
		FROM categories
		ORDER BY display_order ASC, name ASC`

	err := r.db.DB.SelectContext(ctx, &categories, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	query := `
		INSERT INTO categories (id, name, icon, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.DB.ExecContext(ctx, query, c.ID, c.Name, c.Icon, c.DisplayOrder, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// Update updates an existing category
func (r *CategoryRepository) Update(ctx context.Context, c *catalog.Category) error {
	query := `
		UPDATE categories
		SET name = $2, icon = $3, display_order = $4, updated_at = $5
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, c.ID, c.Name, c.Icon, c.DisplayOrder, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", catalog.ErrCategoryNotFound, c.ID)
	}

	return nil
}

// Delete deletes a category by ID
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", catalog.ErrCategoryNotFound, id)
	}

	return nil
}
