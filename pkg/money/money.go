// Package money converts between major and minor currency units.
//
// Prices are stored as int64 minor units (paise). Range inputs and display
// use major units.
package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MinorPerMajor is the number of minor units in one major unit.
const MinorPerMajor = 100

var hundred = decimal.NewFromInt(MinorPerMajor)

var symbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// FromMajor converts whole major units to minor units, saturating at the
// int64 range.
func FromMajor(major int) int64 {
	switch m := int64(major); {
	case m > math.MaxInt64/MinorPerMajor:
		return math.MaxInt64
	case m < math.MinInt64/MinorPerMajor:
		return math.MinInt64
	default:
		return m * MinorPerMajor
	}
}

// ToMajor converts minor units to an exact major-unit decimal.
func ToMajor(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(hundred)
}

// ParseMajor parses a major-unit string such as "19.99" into minor units.
// More than two decimal places is rejected.
func ParseMajor(value string) (int64, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	minor := d.Mul(hundred)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("amount %q has sub-minor precision", value)
	}
	return minor.IntPart(), nil
}

// ApplyRate returns minor × rate rounded half away from zero to a whole minor unit.
func ApplyRate(minor int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(minor).Mul(rate).Round(0).IntPart()
}

// Format renders minor units for display, e.g. Format(1999, "INR") == "₹19.99".
func Format(minor int64, currency string) string {
	symbol, ok := symbols[currency]
	if !ok {
		symbol = currency + " "
	}
	amount := ToMajor(minor)
	if amount.IsNegative() {
		return "-" + symbol + amount.Neg().StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}
