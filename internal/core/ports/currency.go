package ports

import (
	"context"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/currency"
)

// Rate table sources, as reported by CurrencyService.Rates.
const (
	RateSourceLive     = "live"
	RateSourceFallback = "fallback"
)

// RateRepository fetches exchange-rate rows from the source of truth.
type RateRepository interface {
	// RatesToPivot returns all rows whose target currency is the pivot.
	RatesToPivot(ctx context.Context) ([]*currency.Rate, error)
}

// CurrencyService serves the cached rate table and conversions over it.
// Unlike the catalog caches it never fails: when the source is unavailable it
// degrades to the static fallback table.
type CurrencyService interface {
	// Rates returns the current table and its source (live or fallback).
	Rates(ctx context.Context) (currency.Table, string)
	// Convert converts amount between currencies against the current table.
	// ok is false when the conversion is undefined.
	Convert(ctx context.Context, amount float64, from, to string) (converted float64, ok bool)
}
