package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carson-networks/pocket-ledger/internal/logging"
)

// ledgerCounter reports whether the ledger can be read.
type ledgerCounter interface {
	CountTransactions(ctx context.Context) (int, error)
}

type Handler struct {
	Ledger ledgerCounter
}

func NewHandler(ledger ledgerCounter) Handler {
	return Handler{Ledger: ledger}
}

type statusResponse struct {
	Status       string `json:"status"`
	Transactions int    `json:"transactions"`
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	count, err := h.Ledger.CountTransactions(req.Context())
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return err
	}
	logData.AddData("transactionCount", count)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(statusResponse{Status: "ok", Transactions: count})
}
