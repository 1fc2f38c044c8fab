// Package money holds the single rounding policy applied to monetary amounts.
package money

import "github.com/shopspring/decimal"

// Scale is the number of fractional digits kept for stored amounts.
const Scale int32 = 2

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// Format renders an amount with exactly two fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

// Parse reads an amount from its textual form.
func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
