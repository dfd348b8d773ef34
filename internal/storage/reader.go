package storage

import (
	"context"
	"sort"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
)

// ListTransactions returns the transactions of userID, newest first.
// Transactions sharing a date keep their insertion order.
func (s *Storage) ListTransactions(ctx context.Context, userID int) ([]ledger.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	result := make([]ledger.Transaction, 0, len(s.doc.Transactions))
	for _, tx := range s.doc.Transactions {
		if tx.UserID == userID {
			result = append(result, tx)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

// FindTransaction returns the transaction with the given id.
func (s *Storage) FindTransaction(ctx context.Context, id int) (ledger.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Transaction{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tx := range s.doc.Transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return ledger.Transaction{}, &ledger.NotFoundError{Resource: "transaction", ID: id}
}

// CountTransactions returns the number of stored transactions across all users.
func (s *Storage) CountTransactions(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.doc.Transactions), nil
}

// Settings returns the stored settings.
func (s *Storage) Settings(ctx context.Context) (ledger.Settings, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Settings{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Settings.Normalized(), nil
}
