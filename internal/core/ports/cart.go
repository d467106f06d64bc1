package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/cart"
)

// CartRepository persists carts keyed by cart ID. Get returns an empty cart
// for an unknown ID; carts expire on their own after the store's TTL.
type CartRepository interface {
	Get(ctx context.Context, id string) (*cart.Cart, error)
	Save(ctx context.Context, c *cart.Cart) error
	Delete(ctx context.Context, id string) error
}

// CartService defines cart mutations and the multi-currency total view.
// All quantity changes clamp to [0, stock]; a quantity of 0 removes the line.
type CartService interface {
	GetCart(ctx context.Context, id string, currencies []string) (*cart.Cart, cart.Totals, error)
	AddItem(ctx context.Context, id string, productID uuid.UUID, quantity int) (*cart.Cart, error)
	SetQuantity(ctx context.Context, id string, productID uuid.UUID, quantity int) (*cart.Cart, error)
	RemoveItem(ctx context.Context, id string, productID uuid.UUID) (*cart.Cart, error)
}
