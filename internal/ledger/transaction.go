package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType decides the sign of a transaction in aggregations.
type TransactionType string

const (
	TransactionTypeIncome     TransactionType = "income"
	TransactionTypeExpense    TransactionType = "expense"
	TransactionTypeInvestment TransactionType = "investment"
)

// TransactionTypes lists the accepted types in display order.
var TransactionTypes = []TransactionType{
	TransactionTypeIncome,
	TransactionTypeExpense,
	TransactionTypeInvestment,
}

// ParseTransactionType returns the type for s, or false if s is not one of TransactionTypes.
func ParseTransactionType(s string) (TransactionType, bool) {
	for _, t := range TransactionTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Transaction is a stored ledger record.
//
// Amount is kept as canonical decimal text so the persisted document never
// goes through a binary float.
type Transaction struct {
	ID          int             `json:"id"`
	Amount      string          `json:"amount"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	Recipient   *string         `json:"recipient"`
	Date        time.Time       `json:"date"`
	UserID      int             `json:"userId"`
}

// Value returns the amount as a decimal. The store refuses unparseable
// amounts on both write and load, so the zero fallback is never hit in practice.
func (t Transaction) Value() decimal.Decimal {
	d, err := decimal.NewFromString(t.Amount)
	if err != nil {
		return decimal.Zero
	}
	return d
}
