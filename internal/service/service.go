package service

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/pocket-ledger/internal/operator"
	"github.com/carson-networks/pocket-ledger/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Summary     *SummaryService
	Settings    *SettingsService
	Export      *ExportService
	User        *UserService
}

// NewService wires the services over store. Writes go through op; dates are
// bucketed into periods in location.
func NewService(store *storage.Storage, op *operator.OperatorDelegator, users *UserService, location *time.Location, logger *logrus.Logger) *Service {
	if users == nil {
		users = NewUserService(0, logger)
	}
	return &Service{
		Transaction: NewTransactionService(store, op, NewTransactionFactory(time.Now, location)),
		Summary:     NewSummaryService(store, location),
		Settings:    NewSettingsService(store, op),
		Export:      NewExportService(store, location),
		User:        users,
	}
}
