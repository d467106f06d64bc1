package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/cart"
	"github.com/avatarctic/storefront-catalog/internal/core/ports"
)

// CartService applies cart mutations with stock clamping and computes
// multi-currency totals. Each totals computation uses one rate-table snapshot
// for all lines, so the aggregation never mixes rate generations.
type CartService struct {
	carts    ports.CartRepository
	catalog  ports.CatalogService
	currency ports.CurrencyService
	logger   *logrus.Logger
}

func NewCartService(carts ports.CartRepository, catalog ports.CatalogService, currency ports.CurrencyService, logger *logrus.Logger) ports.CartService {
	return &CartService{
		carts:    carts,
		catalog:  catalog,
		currency: currency,
		logger:   logger,
	}
}

func (s *CartService) GetCart(ctx context.Context, id string, currencies []string) (*cart.Cart, cart.Totals, error) {
	c, err := s.carts.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cart: %w", err)
	}

	// One snapshot for the whole aggregation.
	table, source := s.currency.Rates(ctx)
	if source == ports.RateSourceFallback && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"cart_id": id}).Debug("cart totals computed against fallback rates")
	}
	return c, cart.TotalsFor(c.Lines, table, currencies), nil
}

func (s *CartService) AddItem(ctx context.Context, id string, productID uuid.UUID, quantity int) (*cart.Cart, error) {
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	c, err := s.carts.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c.Upsert(cart.Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Currency:  p.Currency,
		Quantity:  quantity,
		Stock:     p.Stock,
	})
	return s.save(ctx, c)
}

func (s *CartService) SetQuantity(ctx context.Context, id string, productID uuid.UUID, quantity int) (*cart.Cart, error) {
	c, err := s.carts.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !c.SetQuantity(productID, quantity) {
		return nil, fmt.Errorf("product %s is not in cart %s", productID, id)
	}
	return s.save(ctx, c)
}

func (s *CartService) RemoveItem(ctx context.Context, id string, productID uuid.UUID) (*cart.Cart, error) {
	c, err := s.carts.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	c.Remove(productID)
	return s.save(ctx, c)
}

func (s *CartService) save(ctx context.Context, c *cart.Cart) (*cart.Cart, error) {
	c.UpdatedAt = time.Now()
	if err := s.carts.Save(ctx, c); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"cart_id": c.ID}).WithError(err).Error("failed to save cart")
		}
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return c, nil
}
