package export

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-ledger/internal/handlers/v1/problem"
	"github.com/carson-networks/pocket-ledger/internal/ledger"
	"github.com/carson-networks/pocket-ledger/internal/logging"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exporter interface {
	ExportTransactions(ctx context.Context, userID int, year *int) ([]byte, error)
}

type ExportTransactionsInput struct {
	Year int `query:"year" doc:"Only export this year and add its monthly summary"`
}

type ExportTransactionsOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// Handler serves the spreadsheet export.
type Handler struct {
	ExportService exporter
}

func NewHandler(svc exporter) *Handler {
	return &Handler{ExportService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "export-transactions",
		Method:      http.MethodGet,
		Path:        "/export/transactions.xlsx",
		Summary:     "Export transactions",
		Description: "Downloads the default user's transactions as an XLSX workbook.",
		Tags:        []string{"Export"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, input *ExportTransactionsInput) (*ExportTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	var year *int
	filename := "transactions.xlsx"
	if input.Year != 0 {
		year = &input.Year
		filename = fmt.Sprintf("transactions-%d.xlsx", input.Year)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("exportMs")
	}
	data, err := h.ExportService.ExportTransactions(ctx, ledger.DefaultUserID, year)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, problem.FromError(err)
	}

	if logData != nil {
		logData.AddData("exportBytes", len(data))
	}
	return &ExportTransactionsOutput{
		ContentType:        xlsxContentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", filename),
		Body:               data,
	}, nil
}
