package domain

import "github.com/shopspring/decimal"

// maxAmount is the first value that no longer fits NUMERIC(10,2).
var maxAmount = decimal.New(1, 8)

// ValidateAmount accepts non-negative amounts with at most two fractional
// digits that fit the NUMERIC(10,2) columns.
func ValidateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return Invalid(field, "must not be negative")
	}
	if !amount.Equal(amount.Round(2)) {
		return Invalid(field, "must have at most 2 decimal places")
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return Invalid(field, "is too large")
	}
	return nil
}
