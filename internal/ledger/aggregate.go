package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary holds the per-type totals of a period bucket.
type Summary struct {
	Income     decimal.Decimal
	Expense    decimal.Decimal
	Investment decimal.Decimal
}

// Add returns the element-wise sum of s and o.
func (s Summary) Add(o Summary) Summary {
	return Summary{
		Income:     s.Income.Add(o.Income),
		Expense:    s.Expense.Add(o.Expense),
		Investment: s.Investment.Add(o.Investment),
	}
}

// MonthSummary is one month of a YearSummary.
type MonthSummary struct {
	Month time.Month
	Summary
}

// YearSummary is the fold of the twelve monthly summaries of a year.
type YearSummary struct {
	Year   int
	Months [12]MonthSummary
	Total  Summary
}

// Balance is the available cash of txs: income minus expense.
// Investments are tracked but move neither way.
func Balance(txs []Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case TransactionTypeIncome:
			balance = balance.Add(tx.Value())
		case TransactionTypeExpense:
			balance = balance.Sub(tx.Value())
		}
	}
	return balance
}

// MonthlySummary sums txs dated inside month/year as seen from loc.
func MonthlySummary(txs []Transaction, year int, month time.Month, loc *time.Location) Summary {
	if loc == nil {
		loc = time.Local
	}

	var summary Summary
	for _, tx := range txs {
		date := tx.Date.In(loc)
		if date.Year() != year || date.Month() != month {
			continue
		}
		switch tx.Type {
		case TransactionTypeIncome:
			summary.Income = summary.Income.Add(tx.Value())
		case TransactionTypeExpense:
			summary.Expense = summary.Expense.Add(tx.Value())
		case TransactionTypeInvestment:
			summary.Investment = summary.Investment.Add(tx.Value())
		}
	}
	return summary
}

// YearlySummary folds the twelve MonthlySummary results of year.
func YearlySummary(txs []Transaction, year int, loc *time.Location) YearSummary {
	result := YearSummary{Year: year}
	for i := range result.Months {
		month := time.Month(i + 1)
		monthly := MonthlySummary(txs, year, month, loc)
		result.Months[i] = MonthSummary{Month: month, Summary: monthly}
		result.Total = result.Total.Add(monthly)
	}
	return result
}
