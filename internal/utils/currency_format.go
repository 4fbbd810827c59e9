package utils

import (
	"github.com/shopspring/decimal"
)

// MinorUnitPrecision is the decimal precision used for display amounts.
// The books are single-currency per church; two minor units covers the
// supported currencies.
const MinorUnitPrecision = 2

// FormatAmount formats a monetary amount with minor-unit precision.
// The core computes raw decimal totals; rounding happens only here, at the
// display boundary.
func FormatAmount(amount decimal.Decimal) string {
	return amount.Round(MinorUnitPrecision).StringFixed(MinorUnitPrecision)
}

// FormatWithPrecision formats an amount with the given precision.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
