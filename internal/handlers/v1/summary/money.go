package summary

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
)

// Money is a decimal rendered as a JSON number with exactly two fraction
// digits. The text is produced from the decimal, never via float64.
type Money decimal.Decimal

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

func (m Money) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{Type: huma.TypeNumber, Description: "Amount with two decimals"}
}

// Totals is the per-type breakdown of a period.
type Totals struct {
	Income     Money `json:"income"`
	Expense    Money `json:"expense"`
	Investment Money `json:"investment"`
}
