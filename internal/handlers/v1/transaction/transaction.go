package transaction

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          int     `json:"id" doc:"Transaction id"`
	Amount      string  `json:"amount" doc:"Non-negative decimal amount"`
	Description string  `json:"description" doc:"What the transaction was for"`
	Type        string  `json:"type" enum:"income,expense,investment" doc:"Transaction type"`
	Recipient   *string `json:"recipient" nullable:"true" doc:"Counterparty, null when unknown"`
	Date        string  `json:"date" format:"date-time" doc:"RFC3339 transaction date"`
	UserID      int     `json:"userId" doc:"Owning user id"`
}

func fromLedger(tx ledger.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Description: tx.Description,
		Type:        string(tx.Type),
		Recipient:   tx.Recipient,
		Date:        tx.Date.Format(time.RFC3339),
		UserID:      tx.UserID,
	}
}

// Amount accepts either a JSON string or a JSON number and keeps the
// literal text so no precision is lost on the way to the decimal parser.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			// booleans and objects are left for the factory to reject
			*a = Amount(data)
			return nil
		}
		*a = Amount(n.String())
	}
	return nil
}

// Schema documents Amount as string-or-number and leaves validation to the
// transaction factory.
func (a Amount) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Description: "Decimal amount as a string or number",
		OneOf: []*huma.Schema{
			{Type: huma.TypeString},
			{Type: huma.TypeNumber},
		},
	}
}
