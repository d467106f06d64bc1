package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/currency"
	"github.com/avatarctic/storefront-catalog/internal/core/ports"
	"github.com/avatarctic/storefront-catalog/internal/infrastructure/httpserver"
)

func TestGetRates_ReportsTableAndSource(t *testing.T) {
	currencyMock := &currencyServiceMock{
		RatesFn: func(ctx context.Context) (currency.Table, string) {
			return currency.Table{"USD": 245.3, "EUR": 268.1, currency.Pivot: 1}, ports.RateSourceLive
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{CurrencyService: currencyMock})

	resp, body := doJSON(t, ts, http.MethodGet, "/currency/rates", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Pivot  string             `json:"pivot"`
		Rates  map[string]float64 `json:"rates"`
		Source string             `json:"source"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Equal(t, currency.Pivot, out.Pivot)
	require.Equal(t, ports.RateSourceLive, out.Source)
	require.InEpsilon(t, 245.3, out.Rates["USD"], 1e-9)
}

func TestConvert_DefinedAndUndefinedPairs(t *testing.T) {
	ts := newTestServer(t, httpserver.ServerDeps{})

	resp, body := doJSON(t, ts, http.MethodPost, "/currency/convert", map[string]any{
		"amount": 10, "from": "USD", "to": currency.Pivot,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Converted *float64 `json:"converted"`
		Formatted string   `json:"formatted"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotNil(t, out.Converted)
	require.InEpsilon(t, 2500.0, *out.Converted, 1e-9)

	// Unknown currency: null sentinel instead of a number, never NaN.
	resp, body = doJSON(t, ts, http.MethodPost, "/currency/convert", map[string]any{
		"amount": 10, "from": "GBP", "to": currency.Pivot,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &out))
	require.Nil(t, out.Converted)
	require.Equal(t, "N/A", out.Formatted)
}

func TestConvert_MissingCurrenciesRejected(t *testing.T) {
	ts := newTestServer(t, httpserver.ServerDeps{})

	resp, _ := doJSON(t, ts, http.MethodPost, "/currency/convert", map[string]any{"amount": 10}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
