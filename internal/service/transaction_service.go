package service

import (
	"context"
	"fmt"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
	"github.com/carson-networks/pocket-ledger/internal/operator"
	"github.com/carson-networks/pocket-ledger/internal/operator/actions"
	"github.com/carson-networks/pocket-ledger/internal/storage"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage  *storage.Storage
	operator *operator.OperatorDelegator
	factory  *TransactionFactory
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, op *operator.OperatorDelegator, factory *TransactionFactory) *TransactionService {
	return &TransactionService{storage: store, operator: op, factory: factory}
}

// CreateTransaction validates req and appends it to the ledger through the
// operator. The returned transaction carries the assigned id.
func (s *TransactionService) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (ledger.Transaction, error) {
	tx, err := s.factory.Build(req)
	if err != nil {
		return ledger.Transaction{}, err
	}

	action := &actions.CreateTransaction{Transaction: tx}
	if err := s.operator.Process(ctx, action); err != nil {
		return ledger.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return action.Created, nil
}

// ListTransactions returns every transaction of userID, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, userID int) ([]ledger.Transaction, error) {
	return s.storage.ListTransactions(ctx, userID)
}

// GetTransaction returns a single transaction or a *ledger.NotFoundError.
func (s *TransactionService) GetTransaction(ctx context.Context, id int) (ledger.Transaction, error) {
	return s.storage.FindTransaction(ctx, id)
}
