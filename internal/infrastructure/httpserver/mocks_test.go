package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/cart"
	"github.com/avatarctic/storefront-catalog/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-catalog/internal/core/domain/currency"
	"github.com/avatarctic/storefront-catalog/internal/core/domain/invalidation"
	"github.com/avatarctic/storefront-catalog/internal/infrastructure/httpserver"
)

// catalogServiceMock is a lightweight mock for CatalogService.
type catalogServiceMock struct {
	ListProductsFn      func(ctx context.Context, page, limit int) (*catalog.ProductList, error)
	GetProductFn        func(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	ListCategoriesFn    func(ctx context.Context) ([]*catalog.Category, error)
	RefreshProductsFn   func(ctx context.Context) (int, error)
	RefreshCategoriesFn func(ctx context.Context) (int, error)
	CreateProductFn     func(ctx context.Context, req *catalog.CreateProductRequest) (*catalog.Product, error)
	UpdateProductFn     func(ctx context.Context, id uuid.UUID, req *catalog.UpdateProductRequest) (*catalog.Product, error)
	DeleteProductFn     func(ctx context.Context, id uuid.UUID) error
	CreateCategoryFn    func(ctx context.Context, req *catalog.CreateCategoryRequest) (*catalog.Category, error)
	UpdateCategoryFn    func(ctx context.Context, id uuid.UUID, req *catalog.UpdateCategoryRequest) (*catalog.Category, error)
	DeleteCategoryFn    func(ctx context.Context, id uuid.UUID) error
}

func (m *catalogServiceMock) ListProducts(ctx context.Context, page, limit int) (*catalog.ProductList, error) {
	if m.ListProductsFn != nil {
		return m.ListProductsFn(ctx, page, limit)
	}
	return &catalog.ProductList{Products: []*catalog.Product{}, Page: page, Limit: limit}, nil
}
func (m *catalogServiceMock) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	if m.GetProductFn != nil {
		return m.GetProductFn(ctx, id)
	}
	return nil, catalog.ErrProductNotFound
}
func (m *catalogServiceMock) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	if m.ListCategoriesFn != nil {
		return m.ListCategoriesFn(ctx)
	}
	return []*catalog.Category{}, nil
}
func (m *catalogServiceMock) RefreshProducts(ctx context.Context) (int, error) {
	if m.RefreshProductsFn != nil {
		return m.RefreshProductsFn(ctx)
	}
	return 0, nil
}
func (m *catalogServiceMock) RefreshCategories(ctx context.Context) (int, error) {
	if m.RefreshCategoriesFn != nil {
		return m.RefreshCategoriesFn(ctx)
	}
	return 0, nil
}
func (m *catalogServiceMock) CreateProduct(ctx context.Context, req *catalog.CreateProductRequest) (*catalog.Product, error) {
	if m.CreateProductFn != nil {
		return m.CreateProductFn(ctx, req)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *catalogServiceMock) UpdateProduct(ctx context.Context, id uuid.UUID, req *catalog.UpdateProductRequest) (*catalog.Product, error) {
	if m.UpdateProductFn != nil {
		return m.UpdateProductFn(ctx, id, req)
	}
	return nil, catalog.ErrProductNotFound
}
func (m *catalogServiceMock) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if m.DeleteProductFn != nil {
		return m.DeleteProductFn(ctx, id)
	}
	return nil
}
func (m *catalogServiceMock) CreateCategory(ctx context.Context, req *catalog.CreateCategoryRequest) (*catalog.Category, error) {
	if m.CreateCategoryFn != nil {
		return m.CreateCategoryFn(ctx, req)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *catalogServiceMock) UpdateCategory(ctx context.Context, id uuid.UUID, req *catalog.UpdateCategoryRequest) (*catalog.Category, error) {
	if m.UpdateCategoryFn != nil {
		return m.UpdateCategoryFn(ctx, id, req)
	}
	return nil, catalog.ErrCategoryNotFound
}
func (m *catalogServiceMock) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if m.DeleteCategoryFn != nil {
		return m.DeleteCategoryFn(ctx, id)
	}
	return nil
}

// currencyServiceMock is a lightweight mock for CurrencyService.
type currencyServiceMock struct {
	RatesFn   func(ctx context.Context) (currency.Table, string)
	ConvertFn func(ctx context.Context, amount float64, from, to string) (float64, bool)
}

func (m *currencyServiceMock) Rates(ctx context.Context) (currency.Table, string) {
	if m.RatesFn != nil {
		return m.RatesFn(ctx)
	}
	return currency.Fallback, "fallback"
}
func (m *currencyServiceMock) Convert(ctx context.Context, amount float64, from, to string) (float64, bool) {
	if m.ConvertFn != nil {
		return m.ConvertFn(ctx, amount, from, to)
	}
	return currency.Convert(amount, from, to, currency.Fallback)
}

// cartServiceMock is a lightweight mock for CartService.
type cartServiceMock struct {
	GetCartFn     func(ctx context.Context, id string, currencies []string) (*cart.Cart, cart.Totals, error)
	AddItemFn     func(ctx context.Context, id string, productID uuid.UUID, quantity int) (*cart.Cart, error)
	SetQuantityFn func(ctx context.Context, id string, productID uuid.UUID, quantity int) (*cart.Cart, error)
	RemoveItemFn  func(ctx context.Context, id string, productID uuid.UUID) (*cart.Cart, error)
}

func (m *cartServiceMock) GetCart(ctx context.Context, id string, currencies []string) (*cart.Cart, cart.Totals, error) {
	if m.GetCartFn != nil {
		return m.GetCartFn(ctx, id, currencies)
	}
	return cart.New(id), cart.Totals{}, nil
}
func (m *cartServiceMock) AddItem(ctx context.Context, id string, productID uuid.UUID, quantity int) (*cart.Cart, error) {
	if m.AddItemFn != nil {
		return m.AddItemFn(ctx, id, productID, quantity)
	}
	return cart.New(id), nil
}
func (m *cartServiceMock) SetQuantity(ctx context.Context, id string, productID uuid.UUID, quantity int) (*cart.Cart, error) {
	if m.SetQuantityFn != nil {
		return m.SetQuantityFn(ctx, id, productID, quantity)
	}
	return cart.New(id), nil
}
func (m *cartServiceMock) RemoveItem(ctx context.Context, id string, productID uuid.UUID) (*cart.Cart, error) {
	if m.RemoveItemFn != nil {
		return m.RemoveItemFn(ctx, id, productID)
	}
	return cart.New(id), nil
}

// invalidationServiceMock is a lightweight mock for InvalidationService.
type invalidationServiceMock struct {
	InvalidateFn func(ctx context.Context, path string) (*invalidation.Result, error)
}

func (m *invalidationServiceMock) Invalidate(ctx context.Context, path string) (*invalidation.Result, error) {
	if m.InvalidateFn != nil {
		return m.InvalidateFn(ctx, path)
	}
	return &invalidation.Result{Revalidated: true, ProductsRefreshed: true, Path: path, Timestamp: time.Now()}, nil
}

const (
	testInvalidateToken = "test-invalidate-token"
	testJWTSecret       = "test-jwt-secret"
)

func newTestServer(t *testing.T, deps httpserver.ServerDeps) *httptest.Server {
	t.Helper()
	if deps.CatalogService == nil {
		deps.CatalogService = &catalogServiceMock{}
	}
	if deps.CurrencyService == nil {
		deps.CurrencyService = &currencyServiceMock{}
	}
	if deps.CartService == nil {
		deps.CartService = &cartServiceMock{}
	}
	if deps.InvalidationService == nil {
		deps.InvalidationService = &invalidationServiceMock{}
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	srv := httpserver.NewServer(
		&httpserver.ServerConfig{Host: "127.0.0.1", Port: "0", ReadTimeout: time.Second, WriteTimeout: time.Second, IdleTimeout: time.Second},
		httpserver.AuthSecrets{InvalidateToken: testInvalidateToken, JWTSecret: testJWTSecret},
		logger,
		deps,
	)

	ts := httptest.NewServer(srv.Echo())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp, respBody
}
