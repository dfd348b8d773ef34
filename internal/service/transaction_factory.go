package service

import (
	"strings"
	"time"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
)

// dateOnlyLayout is accepted next to RFC3339 and read as midnight in the
// factory's location.
const dateOnlyLayout = "2006-01-02"

// CreateTransactionRequest is the unvalidated input for a new transaction.
// Amount carries the caller's literal text, whether it came in as a JSON
// string or a JSON number.
type CreateTransactionRequest struct {
	Amount      string
	Description string
	Type        string
	Recipient   *string
	Date        string
	UserID      int
}

// TransactionFactory validates and normalizes CreateTransactionRequests.
type TransactionFactory struct {
	now      func() time.Time
	location *time.Location
}

// NewTransactionFactory creates a TransactionFactory. A nil clock means
// time.Now and a nil location means time.Local.
func NewTransactionFactory(now func() time.Time, location *time.Location) *TransactionFactory {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.Local
	}
	return &TransactionFactory{now: now, location: location}
}

// Build returns the transaction described by req, without an id. Fields are
// checked in the order amount, description, type, date and the first
// failure is returned as a *ledger.ValidationError.
func (f *TransactionFactory) Build(req CreateTransactionRequest) (ledger.Transaction, error) {
	_, amount, err := ledger.ParseAmount(req.Amount)
	if err != nil {
		return ledger.Transaction{}, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return ledger.Transaction{}, &ledger.ValidationError{Field: "description", Reason: "is required"}
	}

	txType, ok := ledger.ParseTransactionType(req.Type)
	if !ok {
		return ledger.Transaction{}, &ledger.ValidationError{Field: "type", Reason: "must be one of income, expense, investment"}
	}

	date, err := f.parseDate(req.Date)
	if err != nil {
		return ledger.Transaction{}, err
	}

	userID := req.UserID
	if userID == 0 {
		userID = ledger.DefaultUserID
	}
	if userID < 0 {
		return ledger.Transaction{}, &ledger.ValidationError{Field: "userId", Reason: "must be positive"}
	}

	return ledger.Transaction{
		Amount:      amount,
		Description: description,
		Type:        txType,
		Recipient:   normalizeRecipient(req.Recipient),
		Date:        date,
		UserID:      userID,
	}, nil
}

func (f *TransactionFactory) parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return f.now(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateOnlyLayout, s, f.location); err == nil {
		return t, nil
	}
	return time.Time{}, &ledger.ValidationError{Field: "date", Reason: "must be an RFC3339 timestamp or YYYY-MM-DD"}
}

func normalizeRecipient(recipient *string) *string {
	if recipient == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*recipient)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
