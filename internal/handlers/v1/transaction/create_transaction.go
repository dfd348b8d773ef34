package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-ledger/internal/handlers/v1/problem"
	"github.com/carson-networks/pocket-ledger/internal/ledger"
	"github.com/carson-networks/pocket-ledger/internal/logging"
	"github.com/carson-networks/pocket-ledger/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
// Fields are validated by the transaction factory, not the schema, so the
// client gets one error naming the first bad field.
type CreateTransactionBody struct {
	_           struct{} `json:"-" additionalProperties:"true"`
	Amount      Amount   `json:"amount" required:"false"`
	Description string   `json:"description" required:"false" doc:"Required, non-blank"`
	Type        string   `json:"type" required:"false" doc:"One of income, expense, investment"`
	Recipient   *string  `json:"recipient,omitempty" required:"false" nullable:"true" doc:"Optional counterparty"`
	Date        string   `json:"date,omitempty" required:"false" doc:"RFC3339 date or YYYY-MM-DD, defaults to now"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Body Transaction
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, req service.CreateTransactionRequest) (ledger.Transaction, error)
}

// CreateTransactionHandler handles POST /transactions.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/transactions",
		Summary:       "Create transaction",
		Description:   "Validates and records a new transaction for the default user.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func toCreateRequest(input *CreateTransactionInput) service.CreateTransactionRequest {
	return service.CreateTransactionRequest{
		Amount:      string(input.Body.Amount),
		Description: input.Body.Description,
		Type:        input.Body.Type,
		Recipient:   input.Body.Recipient,
		Date:        input.Body.Date,
		UserID:      ledger.DefaultUserID,
	}
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	created, err := h.TransactionService.CreateTransaction(ctx, toCreateRequest(input))
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		if logData != nil {
			logData.Log().WithError(err).Warn("Handler.CreateTransaction.Error")
		}
		return nil, problem.FromError(err)
	}

	if logData != nil {
		logData.AddData("transactionID", created.ID)
	}
	return &CreateTransactionOutput{Body: fromLedger(created)}, nil
}
