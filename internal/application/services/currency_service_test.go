package services_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	impl "github.com/avatarctic/storefront-catalog/internal/application/services"
	"github.com/avatarctic/storefront-catalog/internal/core/domain/currency"
	"github.com/avatarctic/storefront-catalog/internal/core/ports"
)

type rateRepoMock struct {
	ratesFn func(ctx context.Context) ([]*currency.Rate, error)
}

func (m *rateRepoMock) RatesToPivot(ctx context.Context) ([]*currency.Rate, error) {
	if m.ratesFn != nil {
		return m.ratesFn(ctx)
	}
	return nil, nil
}

func TestRates_LiveTable(t *testing.T) {
	fetches := 0
	repo := &rateRepoMock{ratesFn: func(ctx context.Context) ([]*currency.Rate, error) {
		fetches++
		return []*currency.Rate{
			{CurrencyFrom: "USD", CurrencyTo: currency.Pivot, Rate: 240},
		}, nil
	}}
	svc := impl.NewCurrencyService(repo, 300*time.Second, nil)

	table, source := svc.Rates(context.Background())
	if source != ports.RateSourceLive {
		t.Fatalf("source = %q, want live", source)
	}
	if table["USD"] != 240 || table[currency.Pivot] != 1 {
		t.Fatalf("unexpected table %v", table)
	}

	// Second read within TTL is served from the cell.
	svc.Rates(context.Background())
	if fetches != 1 {
		t.Fatalf("expected single fetch within TTL, got %d", fetches)
	}
}

func TestRates_DegradesToFallback(t *testing.T) {
	repo := &rateRepoMock{ratesFn: func(ctx context.Context) ([]*currency.Rate, error) {
		return nil, errors.New("source unavailable")
	}}
	svc := impl.NewCurrencyService(repo, time.Minute, nil)

	table, source := svc.Rates(context.Background())
	if source != ports.RateSourceFallback {
		t.Fatalf("source = %q, want fallback", source)
	}
	// The fallback is the canonical constant, not a copy.
	if table["USD"] != currency.Fallback["USD"] || table[currency.Pivot] != 1 {
		t.Fatalf("unexpected fallback table %v", table)
	}

	// Conversion keeps working in the degraded state.
	got, ok := svc.Convert(context.Background(), 10, "USD", "CUP")
	if !ok || math.Abs(got-2500) > 1e-9 {
		t.Fatalf("Convert(10, USD, CUP) = %v, %v; want 2500, true", got, ok)
	}
}

func TestRates_FailureIsNotCached(t *testing.T) {
	fetches := 0
	repo := &rateRepoMock{ratesFn: func(ctx context.Context) ([]*currency.Rate, error) {
		fetches++
		if fetches == 1 {
			return nil, errors.New("transient failure")
		}
		return []*currency.Rate{{CurrencyFrom: "USD", CurrencyTo: currency.Pivot, Rate: 250}}, nil
	}}
	svc := impl.NewCurrencyService(repo, time.Minute, nil)

	if _, source := svc.Rates(context.Background()); source != ports.RateSourceFallback {
		t.Fatal("first call should degrade to fallback")
	}
	if _, source := svc.Rates(context.Background()); source != ports.RateSourceLive {
		t.Fatal("second call should recover to live rates")
	}
}

func TestConvert_UndefinedRate(t *testing.T) {
	repo := &rateRepoMock{ratesFn: func(ctx context.Context) ([]*currency.Rate, error) {
		return []*currency.Rate{{CurrencyFrom: "USD", CurrencyTo: currency.Pivot, Rate: 250}}, nil
	}}
	svc := impl.NewCurrencyService(repo, time.Minute, nil)

	got, ok := svc.Convert(context.Background(), 10, "USD", "GBP")
	if ok || got != 0 {
		t.Fatalf("Convert to unknown currency = %v, %v; want 0, false", got, ok)
	}
}
