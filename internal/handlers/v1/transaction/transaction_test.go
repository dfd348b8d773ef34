package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
	"github.com/carson-networks/pocket-ledger/internal/service"
)

// mockTransactionService is a mock covering every transaction handler interface.
type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, req service.CreateTransactionRequest) (ledger.Transaction, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, userID int) ([]ledger.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, id int) (ledger.Transaction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

// newTestAPI registers every transaction handler against a humatest API.
func newTestAPI(t *testing.T, svc *mockTransactionService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateTransactionHandler(svc).Register(api)
	NewListTransactionsHandler(svc).Register(api)
	NewGetTransactionHandler(svc).Register(api)
	return api
}

type problemBody struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func sampleTransaction(id int) ledger.Transaction {
	return ledger.Transaction{
		ID:          id,
		Amount:      "12.50",
		Description: "Coffee",
		Type:        ledger.TransactionTypeExpense,
		Date:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UserID:      ledger.DefaultUserID,
	}
}

// -- Amount decoding --

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want Amount
	}{
		{raw: `"50"`, want: "50"},
		{raw: `12.5`, want: "12.5"},
		{raw: `0.125`, want: "0.125"},
		{raw: `null`, want: ""},
		{raw: `true`, want: "true"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &a))
			assert.Equal(t, tt.want, a)
		})
	}
}

// -- POST /transactions --

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req service.CreateTransactionRequest) bool {
		return req.Amount == "12.5" &&
			req.Description == "Coffee" &&
			req.Type == "expense" &&
			req.Recipient == nil &&
			req.UserID == ledger.DefaultUserID
	})).Return(sampleTransaction(1), nil)

	resp := newTestAPI(t, mockSvc).Post("/transactions", map[string]any{
		"amount":      12.5,
		"description": "Coffee",
		"type":        "expense",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.ID)
	assert.Equal(t, "12.50", body.Amount)
	assert.Nil(t, body.Recipient)
	assert.Equal(t, "2025-06-01T12:00:00Z", body.Date)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_RecipientAndDatePassedThrough(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req service.CreateTransactionRequest) bool {
		return req.Amount == "50" &&
			req.Recipient != nil && *req.Recipient == "ACME" &&
			req.Date == "2025-01-15T10:30:00Z"
	})).Return(sampleTransaction(2), nil)

	resp := newTestAPI(t, mockSvc).Post("/transactions", map[string]any{
		"amount":      "50",
		"description": "Salary",
		"type":        "income",
		"recipient":   "ACME",
		"date":        "2025-01-15T10:30:00Z",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_InvalidTypeIsBadRequest(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(ledger.Transaction{}, &ledger.ValidationError{Field: "type", Reason: "must be one of income, expense, investment"})

	resp := newTestAPI(t, mockSvc).Post("/transactions", map[string]any{
		"amount":      "5",
		"description": "Piggy bank",
		"type":        "savings",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	var body problemBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Detail, "type")
}

func TestHTTP_CreateTransaction_SchemaFailureIsBadRequest(t *testing.T) {
	mockSvc := new(mockTransactionService)

	resp := newTestAPI(t, mockSvc).Post("/transactions", map[string]any{
		"amount":      "5",
		"description": 42,
		"type":        "income",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_ServiceErrorIsOpaque(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(ledger.Transaction{}, &ledger.PersistenceError{Op: "write", Path: "/data/transactions.json", Err: errors.New("disk full")})

	resp := newTestAPI(t, mockSvc).Post("/transactions", map[string]any{
		"amount":      "5",
		"description": "x",
		"type":        "income",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NotContains(t, resp.Body.String(), "disk full")
	mockSvc.AssertExpectations(t)
}

// -- GET /transactions --

func TestHTTP_ListTransactions_Success(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, ledger.DefaultUserID).
		Return([]ledger.Transaction{sampleTransaction(2), sampleTransaction(1)}, nil)

	resp := newTestAPI(t, mockSvc).Get("/transactions")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body []Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, 2, body[0].ID)
	assert.Equal(t, 1, body[1].ID)
}

func TestHTTP_ListTransactions_EmptyIsArray(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, ledger.DefaultUserID).Return(nil, nil)

	resp := newTestAPI(t, mockSvc).Get("/transactions")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestHTTP_ListTransactions_ServiceError(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, ledger.DefaultUserID).Return(nil, errors.New("boom"))

	resp := newTestAPI(t, mockSvc).Get("/transactions")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

// -- GET /transactions/{id} --

func TestHTTP_GetTransaction(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("GetTransaction", mock.Anything, 1).Return(sampleTransaction(1), nil)
	mockSvc.On("GetTransaction", mock.Anything, 9).
		Return(ledger.Transaction{}, &ledger.NotFoundError{Resource: "transaction", ID: 9})
	api := newTestAPI(t, mockSvc)

	found := api.Get("/transactions/1")
	assert.Equal(t, http.StatusOK, found.Code)

	missing := api.Get("/transactions/9")
	assert.Equal(t, http.StatusNotFound, missing.Code)

	notANumber := api.Get("/transactions/abc")
	assert.Equal(t, http.StatusBadRequest, notANumber.Code)
}
