package models

import "github.com/shopspring/decimal"

// PercentPlaces is number of decimal places percentage changes are rounded to.
const PercentPlaces = 4

var hundred = decimal.NewFromInt(100)

// PercentChange returns percentage change from baseline to current rounded to PercentPlaces.
// Reports false for zero baseline.
func PercentChange(baseline, current decimal.Decimal) (decimal.Decimal, bool) {
	if baseline.IsZero() {
		return decimal.Decimal{}, false
	}
	return current.Sub(baseline).Div(baseline).Mul(hundred).Round(PercentPlaces), true
}
