package services_test

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	impl "github.com/avatarctic/storefront-catalog/internal/application/services"
	"github.com/avatarctic/storefront-catalog/internal/core/domain/cart"
	"github.com/avatarctic/storefront-catalog/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-catalog/internal/core/domain/currency"
	"github.com/avatarctic/storefront-catalog/internal/core/ports"
)

// memoryCartRepo is an in-memory stand-in for the redis cart store.
type memoryCartRepo struct {
	mu    sync.Mutex
	carts map[string]*cart.Cart
}

func newMemoryCartRepo() *memoryCartRepo {
	return &memoryCartRepo{carts: make(map[string]*cart.Cart)}
}

func (m *memoryCartRepo) Get(ctx context.Context, id string) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.carts[id]; ok {
		cp := *c
		cp.Lines = append([]cart.Line(nil), c.Lines...)
		return &cp, nil
	}
	return cart.New(id), nil
}

func (m *memoryCartRepo) Save(ctx context.Context, c *cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[c.ID] = c
	return nil
}

func (m *memoryCartRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, id)
	return nil
}

func newCartFixture(t *testing.T, products ...*catalog.Product) (*memoryCartRepo, ports.CartService) {
	t.Helper()
	repo := &productRepoMock{
		listAllFn: func(ctx context.Context) ([]*catalog.Product, error) { return products, nil },
	}
	catalogSvc := impl.NewCatalogService(repo, &categoryRepoMock{}, time.Minute, time.Minute, nil)
	rateRepo := &rateRepoMock{ratesFn: func(ctx context.Context) ([]*currency.Rate, error) {
		return []*currency.Rate{
			{CurrencyFrom: "USD", CurrencyTo: currency.Pivot, Rate: 250},
			{CurrencyFrom: "EUR", CurrencyTo: currency.Pivot, Rate: 270.5},
		}, nil
	}}
	currencySvc := impl.NewCurrencyService(rateRepo, time.Minute, nil)
	carts := newMemoryCartRepo()
	return carts, impl.NewCartService(carts, catalogSvc, currencySvc, nil)
}

func TestAddItem_ClampsToStock(t *testing.T) {
	p := &catalog.Product{ID: uuid.New(), Name: "mug", Price: 10, Currency: "USD", Stock: 5}
	_, svc := newCartFixture(t, p)

	c, err := svc.AddItem(context.Background(), "c1", p.ID, 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Lines) != 1 || c.Lines[0].Quantity != 5 {
		t.Fatalf("expected line clamped to 5, got %+v", c.Lines)
	}
}

func TestSetQuantity_ZeroRemoves(t *testing.T) {
	p := &catalog.Product{ID: uuid.New(), Name: "mug", Price: 10, Currency: "USD", Stock: 5}
	_, svc := newCartFixture(t, p)

	if _, err := svc.AddItem(context.Background(), "c1", p.ID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := svc.SetQuantity(context.Background(), "c1", p.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(c.Lines))
	}
}

func TestSetQuantity_UnknownProductFails(t *testing.T) {
	p := &catalog.Product{ID: uuid.New(), Name: "mug", Price: 10, Currency: "USD", Stock: 5}
	_, svc := newCartFixture(t, p)

	if _, err := svc.SetQuantity(context.Background(), "c1", uuid.New(), 3); err == nil {
		t.Fatal("expected error for product not in cart")
	}
}

func TestGetCart_MultiCurrencyTotals(t *testing.T) {
	usd := &catalog.Product{ID: uuid.New(), Name: "mug", Price: 10, Currency: "USD", Stock: 10}
	eur := &catalog.Product{ID: uuid.New(), Name: "print", Price: 5, Currency: "EUR", Stock: 10}
	_, svc := newCartFixture(t, usd, eur)

	if _, err := svc.AddItem(context.Background(), "c1", usd.ID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.AddItem(context.Background(), "c1", eur.ID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, totals, err := svc.GetCart(context.Background(), "c1", []string{"CUP", "USD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := totals["CUP"]; math.Abs(got-6352.5) > 1e-9 {
		t.Fatalf("CUP total = %v, want 6352.5", got)
	}
	if got := totals["USD"]; math.Abs(got-25.41) > 1e-9 {
		t.Fatalf("USD total = %v, want 25.41", got)
	}
}

func TestGetCart_UnknownIDIsEmpty(t *testing.T) {
	_, svc := newCartFixture(t)

	c, totals, err := svc.GetCart(context.Background(), "nope", []string{"CUP"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(c.Lines))
	}
	if totals["CUP"] != 0 {
		t.Fatalf("empty cart CUP total = %v, want 0", totals["CUP"])
	}
}
