package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Reference doubles as its display name.
type Product struct {
	ID           int64
	Reference    string
	CategoryID   int64
	CategoryName string
	Price        decimal.Decimal
	Width        decimal.NullDecimal
	Height       decimal.NullDecimal
	Depth        decimal.NullDecimal
	Stock        int
	Sales        int
	Description  string
	CreatedAt    time.Time
	DeletedAt    *time.Time
}
