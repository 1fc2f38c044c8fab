package dto

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/commerce-admin/internal/domain/money"
)

// Money renders an amount as a JSON number with exactly two decimals.
type Money decimal.Decimal

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(money.Format(decimal.Decimal(m))), nil
}

// Number renders a decimal as a JSON number without padding.
type Number decimal.Decimal

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

// OptionalNumber maps an absent value to nil so it renders as null.
func OptionalNumber(d decimal.NullDecimal) *Number {
	if !d.Valid {
		return nil
	}
	n := Number(d.Decimal)
	return &n
}
