package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-catalog/internal/cache"
	"github.com/avatarctic/storefront-catalog/internal/core/domain/currency"
	"github.com/avatarctic/storefront-catalog/internal/core/ports"
)

// CurrencyService serves the pivot-normalized rate table from a TTL cache
// cell. Unlike the catalog caches, a failed acquisition degrades to the
// static fallback table: currency display must never block checkout. The
// failure is not cached, so the next call retries the source.
type CurrencyService struct {
	rates  *cache.Cell[currency.Table]
	repo   ports.RateRepository
	logger *logrus.Logger
}

func NewCurrencyService(repo ports.RateRepository, ttl time.Duration, logger *logrus.Logger) ports.CurrencyService {
	return &CurrencyService{
		rates:  cache.NewCell[currency.Table]("rates", ttl),
		repo:   repo,
		logger: logger,
	}
}

func (s *CurrencyService) Rates(ctx context.Context) (currency.Table, string) {
	table, err := s.rates.Get(ctx, s.populate)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Warn("rate source unavailable, serving fallback table")
		}
		return currency.Fallback, ports.RateSourceFallback
	}
	return table, ports.RateSourceLive
}

func (s *CurrencyService) Convert(ctx context.Context, amount float64, from, to string) (float64, bool) {
	table, _ := s.Rates(ctx)
	return currency.Convert(amount, from, to, table)
}

func (s *CurrencyService) populate(ctx context.Context) (currency.Table, error) {
	rows, err := s.repo.RatesToPivot(ctx)
	if err != nil {
		return nil, err
	}
	return currency.BuildTable(rows), nil
}
