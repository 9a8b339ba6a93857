// Package money centralizes the decimal arithmetic helpers used for
// discount amounts, so rounding happens in exactly one place.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Parse reads a configured monetary or numeric value. The boolean is false
// when the raw value cannot be interpreted as a number.
func Parse(raw string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, false
	}
	return value, true
}

// ParseInt reads a configured integer value, rejecting fractional input.
func ParseInt(raw string) (int, bool) {
	value, ok := Parse(raw)
	if !ok || !value.IsInteger() {
		return 0, false
	}
	return int(value.IntPart()), true
}

// ClampPercent bounds a percentage into [0, 100].
func ClampPercent(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}
	if value.GreaterThan(hundred) {
		return hundred
	}
	return value
}

// Percent applies pct (already clamped by the caller) to base.
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Round normalizes an amount to cents. Applied only to final output values;
// intermediate arithmetic stays at full precision.
func Round(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}
