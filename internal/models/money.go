package models

import "github.com/shopspring/decimal"

// Prices are stored as integer euro cents and handled as decimals everywhere else.

// CentsToDecimal converts a stored cent amount to a decimal euro value.
func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// DecimalToCents converts a euro value to cents. Callers validate precision first.
func DecimalToCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// HasCentPrecision reports whether d has at most two fractional digits.
func HasCentPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}
