package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	minAmountScale = 2
	// maxAmountScale and maxAmountIntegerDigits bound the canonical text of
	// an amount. They are checked on the exponent before anything rescales
	// the value, since "1e-2000000000" is a valid decimal literal.
	maxAmountScale         = 8
	maxAmountIntegerDigits = 15
)

// ParseAmount validates s as a non-negative decimal and returns it together
// with its canonical text form.
func ParseAmount(s string) (decimal.Decimal, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, "", &ValidationError{Field: "amount", Reason: "is required"}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, "", &ValidationError{Field: "amount", Reason: "must be a decimal number"}
	}
	if d.IsNegative() {
		return decimal.Zero, "", &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if exp := d.Exponent(); -int64(exp) > maxAmountScale {
		return decimal.Zero, "", &ValidationError{Field: "amount", Reason: "must have at most 8 decimal places"}
	}
	if exp := d.Exponent(); int64(exp) > maxAmountIntegerDigits ||
		(!d.IsZero() && int64(d.NumDigits())+int64(exp) > maxAmountIntegerDigits) {
		return decimal.Zero, "", &ValidationError{Field: "amount", Reason: "must have at most 15 integer digits"}
	}
	return d, CanonicalAmount(d), nil
}

// CanonicalAmount renders d with at least two fractional digits, keeping any
// extra precision d already carries.
func CanonicalAmount(d decimal.Decimal) string {
	scale := int32(minAmountScale)
	if exp := d.Exponent(); -exp > scale {
		scale = -exp
	}
	return d.StringFixed(scale)
}
