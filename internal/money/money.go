// Package money provides exact decimal helpers for monetary amounts.
//
// All monetary math in the application goes through shopspring/decimal; binary
// floating point is never used for amounts that end up in an allocation or a
// payment request. Currencies are assumed to have two minor-unit places
// (currency conversion is out of scope).
package money

import "github.com/shopspring/decimal"

// Places is the number of minor-unit decimal places.
const Places = 2

var (
	minorUnit  = decimal.New(1, -Places) // 0.01
	oneHundred = decimal.NewFromInt(100)
)

// MinorUnit returns the smallest representable currency amount (0.01).
func MinorUnit() decimal.Decimal {
	return minorUnit
}

// Round rounds an amount to the minor currency unit (half away from zero).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// WithinMinorUnit reports whether two amounts differ by at most one minor unit.
func WithinMinorUnit(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(minorUnit)
}

// Percent converts a percentage value (e.g. 15) to its multiplier (0.15).
func Percent(p decimal.Decimal) decimal.Decimal {
	return p.Div(oneHundred)
}
