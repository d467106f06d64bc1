// Package cart models shopping carts and the multi-currency total
// aggregation computed against a single rate-table snapshot.
package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/currency"
)

// Line is one cart entry. Price, currency and stock are copied from the
// product at add time; quantity is always kept within [0, Stock].
type Line struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	Quantity  int       `json:"quantity"`
	Stock     int       `json:"stock"`
}

// Subtotal is the line amount in the line's native currency.
func (l Line) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Cart is a customer's cart, persisted per cart ID.
type Cart struct {
	ID        string    `json:"id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an empty cart for the given ID.
func New(id string) *Cart {
	return &Cart{ID: id}
}

// Totals maps a target display currency to the accumulated cart amount.
// Targets whose conversion is undefined for any line are omitted entirely;
// the presentation layer renders those as "N/A".
type Totals map[string]float64

// ClampQuantity bounds a requested quantity to [0, stock].
func ClampQuantity(quantity, stock int) int {
	if quantity < 0 {
		return 0
	}
	if quantity > stock {
		return stock
	}
	return quantity
}

// Upsert adds the line, or merges its quantity into an existing line for the
// same product. The resulting quantity is clamped to the line's stock.
// A resulting quantity of 0 removes the line.
func (c *Cart) Upsert(line Line) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.SetQuantity(line.ProductID, c.Lines[i].Quantity+line.Quantity)
			return
		}
	}
	line.Quantity = ClampQuantity(line.Quantity, line.Stock)
	if line.Quantity == 0 {
		return
	}
	c.Lines = append(c.Lines, line)
}

// SetQuantity sets the quantity for a product's line, clamped to [0, stock].
// Setting 0 removes the line. Returns false if the product is not in the cart.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID != productID {
			continue
		}
		q := ClampQuantity(quantity, c.Lines[i].Stock)
		if q == 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
		c.Lines[i].Quantity = q
		return true
	}
	return false
}

// Remove drops a product's line. Returns false if it was not present.
func (c *Cart) Remove(productID uuid.UUID) bool {
	return c.SetQuantity(productID, 0)
}

// TotalsFor aggregates every line's native-currency subtotal into each target
// currency against a single rate-table snapshot. Accumulation keeps full
// precision; rounding is the display layer's job. The caller must not swap
// the table mid-aggregation, so each target is converted against the same
// rates for every line.
func TotalsFor(lines []Line, table currency.Table, targets []string) Totals {
	totals := make(Totals, len(targets))
	for _, target := range targets {
		sum := 0.0
		defined := true
		for _, line := range lines {
			converted, ok := currency.Convert(line.Subtotal(), line.Currency, target, table)
			if !ok {
				defined = false
				break
			}
			sum += converted
		}
		if defined {
			totals[target] = sum
		}
	}
	return totals
}
