package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/catalog"
)

// ProductRepository defines the interface for product data operations against
// the source of truth. ListAll returns the entire dataset ordered by creation
// time descending; the catalog cache paginates over the cached result.
type ProductRepository interface {
	ListAll(ctx context.Context) ([]*catalog.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	Create(ctx context.Context, p *catalog.Product) error
	Update(ctx context.Context, p *catalog.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines the interface for category data operations.
type CategoryRepository interface {
	ListAll(ctx context.Context) ([]*catalog.Category, error)
	Create(ctx context.Context, c *catalog.Category) error
	Update(ctx context.Context, c *catalog.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CatalogService defines the cached catalog read surface plus the admin
// mutations that force a cache refresh after each write.
type CatalogService interface {
	ListProducts(ctx context.Context, page, limit int) (*catalog.ProductList, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	ListCategories(ctx context.Context) ([]*catalog.Category, error)
	// RefreshProducts repopulates the product cache immediately and returns
	// the new dataset size. Idempotent, safe concurrently with reads.
	RefreshProducts(ctx context.Context) (int, error)
	RefreshCategories(ctx context.Context) (int, error)

	CreateProduct(ctx context.Context, req *catalog.CreateProductRequest) (*catalog.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *catalog.UpdateProductRequest) (*catalog.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	CreateCategory(ctx context.Context, req *catalog.CreateCategoryRequest) (*catalog.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *catalog.UpdateCategoryRequest) (*catalog.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
