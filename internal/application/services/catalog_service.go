package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-catalog/internal/cache"
	"github.com/avatarctic/storefront-catalog/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-catalog/internal/core/ports"
)

// CatalogService serves products and categories from process-local TTL cache
// cells in front of the repositories. The product cell holds the entire
// dataset; pagination is computed over the cached snapshot.
type CatalogService struct {
	products   *cache.Cell[[]*catalog.Product]
	categories *cache.Cell[[]*catalog.Category]

	productRepo  ports.ProductRepository
	categoryRepo ports.CategoryRepository
	logger       *logrus.Logger
}

func NewCatalogService(productRepo ports.ProductRepository, categoryRepo ports.CategoryRepository, productTTL, categoryTTL time.Duration, logger *logrus.Logger) ports.CatalogService {
	return &CatalogService{
		products:     cache.NewCell[[]*catalog.Product]("products", productTTL),
		categories:   cache.NewCell[[]*catalog.Category]("categories", categoryTTL),
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// ListProducts returns one page sliced from the cached full dataset. A page
// beyond the data returns empty items with correct totals. A repository
// failure surfaces to the caller: there is no stale-serving for products.
func (s *CatalogService) ListProducts(ctx context.Context, page, limit int) (*catalog.ProductList, error) {
	if page < 1 || limit < 1 {
		return nil, catalog.ErrInvalidPagination
	}

	all, err := s.products.Get(ctx, s.productRepo.ListAll)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Error("failed to populate product cache")
		}
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	total := len(all)
	totalPages := (total + limit - 1) / limit
	offset := (page - 1) * limit

	items := []*catalog.Product{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		items = all[offset:end]
	}

	return &catalog.ProductList{
		Products:   items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// GetProduct looks a product up in the cached snapshot, falling back to the
// repository for records newer than the snapshot.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	all, err := s.products.Get(ctx, s.productRepo.ListAll)
	if err == nil {
		for _, p := range all {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return s.productRepo.GetByID(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	cats, err := s.categories.Get(ctx, s.categoryRepo.ListAll)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Error("failed to populate category cache")
		}
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return cats, nil
}

// RefreshProducts forces an immediate repopulate regardless of TTL state.
// Used by the invalidation coordinator and by admin mutations after a write.
func (s *CatalogService) RefreshProducts(ctx context.Context) (int, error) {
	all, err := s.products.Refresh(ctx, s.productRepo.ListAll)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Error("product cache refresh failed")
		}
		return 0, fmt.Errorf("failed to refresh products: %w", err)
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"count": len(all)}).Info("product cache refreshed")
	}
	return len(all), nil
}

func (s *CatalogService) RefreshCategories(ctx context.Context) (int, error) {
	cats, err := s.categories.Refresh(ctx, s.categoryRepo.ListAll)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Error("category cache refresh failed")
		}
		return 0, fmt.Errorf("failed to refresh categories: %w", err)
	}
	return len(cats), nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req *catalog.CreateProductRequest) (*catalog.Product, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid category id", catalog.ErrInvalidInput)
	}
	now := time.Now()
	p := &catalog.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Stock:       req.Stock,
		CategoryID:  categoryID,
		OnSale:      req.OnSale,
		Featured:    req.Featured,
		IsNew:       req.IsNew,
		Images:      req.Images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.productRepo.Create(ctx, p); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"name": req.Name}).WithError(err).Error("failed to create product")
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.refreshAfterWrite(ctx)
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *catalog.UpdateProductRequest) (*catalog.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyProductUpdates(p, req); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, p); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"id": id}).WithError(err).Error("failed to update product")
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	s.refreshAfterWrite(ctx)
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshAfterWrite(ctx)
	return nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req *catalog.CreateCategoryRequest) (*catalog.Category, error) {
	now := time.Now()
	c := &catalog.Category{
		ID:           uuid.New(),
		Name:         req.Name,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	if _, err := s.RefreshCategories(ctx); err != nil && s.logger != nil {
		s.logger.WithError(err).Warn("category cache refresh after write failed")
	}
	return c, nil
}

// UpdateCategory applies the non-nil fields to an existing category. The
// current record is looked up in the cached list; the cached snapshot itself
// is never mutated, the write goes through a copy.
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *catalog.UpdateCategoryRequest) (*catalog.Category, error) {
	cats, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	var updated *catalog.Category
	for _, cat := range cats {
		if cat.ID == id {
			cp := *cat
			updated = &cp
			break
		}
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: %s", catalog.ErrCategoryNotFound, id)
	}

	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Icon != nil {
		updated.Icon = *req.Icon
	}
	if req.DisplayOrder != nil {
		updated.DisplayOrder = *req.DisplayOrder
	}
	updated.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, updated); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"id": id}).WithError(err).Error("failed to update category")
		}
		return nil, err
	}
	if _, err := s.RefreshCategories(ctx); err != nil && s.logger != nil {
		s.logger.WithError(err).Warn("category cache refresh after write failed")
	}
	return updated, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	if _, err := s.RefreshCategories(ctx); err != nil && s.logger != nil {
		s.logger.WithError(err).Warn("category cache refresh after write failed")
	}
	return nil
}

// refreshAfterWrite repopulates the product cache so the instance that
// handled the mutation serves post-write data immediately. A refresh failure
// is logged, not surfaced: the write itself succeeded and the cache will
// converge on its TTL.
func (s *CatalogService) refreshAfterWrite(ctx context.Context) {
	if _, err := s.RefreshProducts(ctx); err != nil && s.logger != nil {
		s.logger.WithError(err).Warn("product cache refresh after write failed")
	}
}

// applyProductUpdates applies the non-nil fields from the request to the
// product. Returns an error when a field fails validation.
func applyProductUpdates(p *catalog.Product, req *catalog.UpdateProductRequest) error {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return fmt.Errorf("%w: price must be positive", catalog.ErrInvalidInput)
		}
		p.Price = *req.Price
	}
	if req.Currency != nil {
		p.Currency = *req.Currency
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return fmt.Errorf("%w: stock cannot be negative", catalog.ErrInvalidInput)
		}
		p.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return fmt.Errorf("%w: invalid category id", catalog.ErrInvalidInput)
		}
		p.CategoryID = categoryID
	}
	if req.OnSale != nil {
		p.OnSale = *req.OnSale
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.IsNew != nil {
		p.IsNew = *req.IsNew
	}
	if req.Images != nil {
		p.Images = *req.Images
	}
	p.UpdatedAt = time.Now()
	return nil
}
