package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
	"github.com/carson-networks/pocket-ledger/internal/storage"
)

const (
	minYear = 1
	maxYear = 9999
)

// SummaryService computes balances and period summaries on demand.
type SummaryService struct {
	storage  *storage.Storage
	location *time.Location
}

// NewSummaryService creates a SummaryService bucketing dates in location.
func NewSummaryService(store *storage.Storage, location *time.Location) *SummaryService {
	if location == nil {
		location = time.Local
	}
	return &SummaryService{storage: store, location: location}
}

// Balance returns income minus expense over all of userID's transactions.
func (s *SummaryService) Balance(ctx context.Context, userID int) (decimal.Decimal, error) {
	txs, err := s.storage.ListTransactions(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.Balance(txs), nil
}

// MonthlySummary returns the per-type totals for month (1-12) of year.
func (s *SummaryService) MonthlySummary(ctx context.Context, userID, year, month int) (ledger.Summary, error) {
	if month < 1 || month > 12 {
		return ledger.Summary{}, &ledger.ValidationError{Field: "month", Reason: "must be between 1 and 12"}
	}
	if err := validateYear(year); err != nil {
		return ledger.Summary{}, err
	}

	txs, err := s.storage.ListTransactions(ctx, userID)
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.MonthlySummary(txs, year, time.Month(month), s.location), nil
}

// YearlySummary returns the twelve monthly summaries of year and their total.
func (s *SummaryService) YearlySummary(ctx context.Context, userID, year int) (ledger.YearSummary, error) {
	if err := validateYear(year); err != nil {
		return ledger.YearSummary{}, err
	}

	txs, err := s.storage.ListTransactions(ctx, userID)
	if err != nil {
		return ledger.YearSummary{}, err
	}
	return ledger.YearlySummary(txs, year, s.location), nil
}

func validateYear(year int) error {
	if year < minYear || year > maxYear {
		return &ledger.ValidationError{Field: "year", Reason: "must be between 1 and 9999"}
	}
	return nil
}
