package repositories

import (
	"context"
	"fmt"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/currency"
	"github.com/avatarctic/storefront-catalog/internal/core/ports"
	"github.com/avatarctic/storefront-catalog/internal/infrastructure/db"
)

// RateRepository implements the exchange-rate repository interface
type RateRepository struct {
	db *db.Database
}

// NewRateRepository creates a new exchange-rate repository
func NewRateRepository(database *db.Database) ports.RateRepository {
	return &RateRepository{
		db: database,
	}
}

// RatesToPivot returns all rate rows whose target currency is the pivot.
func (r *RateRepository) RatesToPivot(ctx context.Context) ([]*currency.Rate, error) {
	var rates []*currency.Rate
	query := `
		SELECT currency_from, currency_to, rate, updated_at
		FROM exchange_rates
		WHERE currency_to = $1`

	err := r.db.DB.SelectContext(ctx, &rates, query, currency.Pivot)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}

	return rates, nil
}
