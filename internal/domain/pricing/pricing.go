// Package pricing derives order totals from frozen line snapshots.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/commerce-admin/internal/domain/money"
)

var (
	// DefaultDeliveryRate is the currency charged per unit of shipped volume.
	DefaultDeliveryRate = decimal.NewFromInt(10)
	// DefaultTaxRate applies to subtotal plus delivery.
	DefaultTaxRate = decimal.RequireFromString("0.2")
)

// Line is the pricing view of an order item.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
	Width     decimal.NullDecimal
	Height    decimal.NullDecimal
	Depth     decimal.NullDecimal
}

// Total returns unit price times quantity.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Volume returns the shipped volume of the line, zero when any dimension is missing.
func (l Line) Volume() decimal.Decimal {
	if !l.Width.Valid || !l.Height.Valid || !l.Depth.Valid {
		return decimal.Zero
	}
	return l.Width.Decimal.
		Mul(l.Height.Decimal).
		Mul(l.Depth.Decimal).
		Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals groups the derived monetary fields of an order.
type Totals struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	TaxAmount   decimal.Decimal
	GrandTotal  decimal.Decimal
}

// Calculator computes totals using the configured rates.
type Calculator struct {
	deliveryRate decimal.Decimal
	taxRate      decimal.Decimal
}

// NewCalculator constructs Calculator.
func NewCalculator(deliveryRate, taxRate decimal.Decimal) *Calculator {
	return &Calculator{deliveryRate: deliveryRate, taxRate: taxRate}
}

// NewDefaultCalculator uses the standard delivery and tax rates.
func NewDefaultCalculator() *Calculator {
	return NewCalculator(DefaultDeliveryRate, DefaultTaxRate)
}

// ComputeTotals is pure: the same lines always produce the same totals.
// Only delivery fee and tax are rounded; subtotal and grand total are exact sums.
func (c *Calculator) ComputeTotals(lines []Line) Totals {
	subtotal := decimal.Zero
	volume := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Total())
		volume = volume.Add(line.Volume())
	}

	delivery := money.Round2(volume.Mul(c.deliveryRate))
	tax := money.Round2(subtotal.Add(delivery).Mul(c.taxRate))

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: delivery,
		TaxAmount:   tax,
		GrandTotal:  subtotal.Add(delivery).Add(tax),
	}
}
