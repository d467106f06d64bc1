package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrProductNotFound is returned when a product lookup misses both the cached
// snapshot and the source of truth.
var ErrProductNotFound = errors.New("product not found")

// ErrInvalidPagination flags page/limit values that must be rejected rather
// than coerced, so a caller never silently receives the wrong page.
var ErrInvalidPagination = errors.New("page and limit must be positive")

// ErrInvalidInput flags a mutation request that fails validation. Handlers
// map it to a 400 rather than a server error.
var ErrInvalidInput = errors.New("invalid input")

// Product mirrors one catalog record from the source of truth. The cache
// never mutates products, it only replaces whole snapshots.
type Product struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Description string         `json:"description" db:"description"`
	Price       float64        `json:"price" db:"price"`
	Currency    string         `json:"currency" db:"currency"`
	Stock       int            `json:"stock" db:"stock"`
	CategoryID  uuid.UUID      `json:"category_id" db:"category_id"`
	OnSale      bool           `json:"on_sale" db:"on_sale"`
	Featured    bool           `json:"featured" db:"featured"`
	IsNew       bool           `json:"is_new" db:"is_new"`
	Images      pq.StringArray `json:"images" db:"images"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// ProductList is one page sliced from the cached full dataset.
type ProductList struct {
	Products   []*Product `json:"products"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	Total      int        `json:"total"`
	TotalPages int        `json:"totalPages"`
}

// CreateProductRequest represents the request to create a new product
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required"`
	Currency    string   `json:"currency" validate:"required"`
	Stock       int      `json:"stock"`
	CategoryID  string   `json:"category_id" validate:"required"`
	OnSale      bool     `json:"on_sale"`
	Featured    bool     `json:"featured"`
	IsNew       bool     `json:"is_new"`
	Images      []string `json:"images"`
}

// UpdateProductRequest represents the request to update a product
type UpdateProductRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Currency    *string   `json:"currency,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
	CategoryID  *string   `json:"category_id,omitempty"`
	OnSale      *bool     `json:"on_sale,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
	IsNew       *bool     `json:"is_new,omitempty"`
	Images      *[]string `json:"images,omitempty"`
}
