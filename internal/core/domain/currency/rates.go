// Package currency holds the pivot-normalized rate table and the conversion
// engine that the cart and display layers operate on. Tables are immutable
// snapshots: a refresh replaces the whole map, it never mutates one in place.
package currency

import (
	"fmt"
	"math"
	"time"
)

// Pivot is the reference currency all rates are normalized against. Every
// table maps Pivot to exactly 1.0.
const Pivot = "CUP"

// Rate is one exchange-rate row from the source: how many Pivot units one
// unit of CurrencyFrom is worth.
type Rate struct {
	CurrencyFrom string    `json:"currency_from" db:"currency_from"`
	CurrencyTo   string    `json:"currency_to" db:"currency_to"`
	Rate         float64   `json:"rate" db:"rate"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Table maps currency code to its rate against the pivot. An absent or
// non-positive entry means the currency cannot be converted to or from.
type Table map[string]float64

// Fallback is the canonical static table served when the rate source is
// unavailable. Currency display must never block checkout, so the rate layer
// degrades to this instead of failing. Keep this the only copy; tests
// reference it too.
var Fallback = Table{
	"USD": 250,
	"EUR": 270.5,
	Pivot: 1,
}

// BuildTable assembles a pivot-normalized table from source rows, dropping
// rows that do not target the pivot or carry a non-positive rate. The pivot
// entry is always present.
func BuildTable(rows []*Rate) Table {
	t := make(Table, len(rows)+1)
	for _, r := range rows {
		if r.CurrencyTo != Pivot || r.Rate <= 0 {
			continue
		}
		t[r.CurrencyFrom] = r.Rate
	}
	t[Pivot] = 1
	return t
}

// CrossRate computes rate(from→to) = table[from] / table[to]. Equal
// currencies are the identity even when absent from the table. A missing or
// non-positive entry makes the conversion undefined and yields (0, false);
// callers render "N/A" rather than a number.
func (t Table) CrossRate(from, to string) (float64, bool) {
	if from == to {
		return 1, true
	}
	a, b := t[from], t[to]
	if a <= 0 || b <= 0 {
		return 0, false
	}
	return a / b, true
}

// Convert converts amount from one currency to another. Returns (0, false)
// when the conversion is undefined.
func Convert(amount float64, from, to string, t Table) (float64, bool) {
	rate, ok := t.CrossRate(from, to)
	if !ok {
		return 0, false
	}
	return amount * rate, true
}

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Format renders an amount for display: rounded to 2 decimal places with the
// currency symbol or code. Rounding happens only here; internal accumulation
// keeps full precision so per-line rounding error never compounds.
func Format(amount float64, code string) string {
	rounded := math.Round(amount*100) / 100
	if sym, ok := symbols[code]; ok {
		return fmt.Sprintf("%s%.2f", sym, rounded)
	}
	return fmt.Sprintf("%.2f %s", rounded, code)
}
