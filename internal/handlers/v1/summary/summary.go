package summary

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pocket-ledger/internal/handlers/v1/problem"
	"github.com/carson-networks/pocket-ledger/internal/ledger"
	"github.com/carson-networks/pocket-ledger/internal/logging"
)

// summaryService is the read side the summary handlers depend on.
type summaryService interface {
	Balance(ctx context.Context, userID int) (decimal.Decimal, error)
	MonthlySummary(ctx context.Context, userID, year, month int) (ledger.Summary, error)
	YearlySummary(ctx context.Context, userID, year int) (ledger.YearSummary, error)
}

func totalsFrom(s ledger.Summary) Totals {
	return Totals{
		Income:     Money(s.Income),
		Expense:    Money(s.Expense),
		Investment: Money(s.Investment),
	}
}

type MonthlySummaryInput struct {
	Month int `path:"month" doc:"Month, 1-12"`
	Year  int `path:"year" doc:"Four digit year"`
}

type MonthlySummaryOutput struct {
	Body Totals
}

type BalanceOutput struct {
	Body struct {
		Balance Money `json:"balance" doc:"Income minus expense"`
	}
}

type YearlySummaryInput struct {
	Year int `path:"year" doc:"Four digit year"`
}

type MonthTotals struct {
	Month int `json:"month" doc:"Month, 1-12"`
	Totals
}

type YearlySummaryBody struct {
	Year   int           `json:"year"`
	Months []MonthTotals `json:"months" doc:"Twelve monthly summaries, January first"`
	Totals
}

type YearlySummaryOutput struct {
	Body YearlySummaryBody
}

// Handler serves balance and period summaries.
type Handler struct {
	SummaryService summaryService
}

func NewHandler(svc summaryService) *Handler {
	return &Handler{SummaryService: svc}
}

// Register registers the balance and summary endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-balance",
		Method:      http.MethodGet,
		Path:        "/balance",
		Summary:     "Get balance",
		Description: "Income minus expense over every transaction. Investments do not count.",
		Tags:        []string{"Summary"},
	}, h.balance)

	huma.Register(api, huma.Operation{
		OperationID: "get-monthly-summary",
		Method:      http.MethodGet,
		Path:        "/summary/{month}/{year}",
		Summary:     "Get monthly summary",
		Tags:        []string{"Summary"},
	}, h.monthly)

	huma.Register(api, huma.Operation{
		OperationID: "get-yearly-summary",
		Method:      http.MethodGet,
		Path:        "/yearly-summary/{year}",
		Summary:     "Get yearly summary",
		Description: "The twelve monthly summaries of a year and their total.",
		Tags:        []string{"Summary"},
	}, h.yearly)
}

func (h *Handler) balance(ctx context.Context, _ *struct{}) (*BalanceOutput, error) {
	balance, err := h.SummaryService.Balance(ctx, ledger.DefaultUserID)
	if err != nil {
		return nil, problem.FromError(err)
	}

	resp := &BalanceOutput{}
	resp.Body.Balance = Money(balance)
	return resp, nil
}

func (h *Handler) monthly(ctx context.Context, input *MonthlySummaryInput) (*MonthlySummaryOutput, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("month", input.Month)
		logData.AddData("year", input.Year)
	}

	summary, err := h.SummaryService.MonthlySummary(ctx, ledger.DefaultUserID, input.Year, input.Month)
	if err != nil {
		return nil, problem.FromError(err)
	}
	return &MonthlySummaryOutput{Body: totalsFrom(summary)}, nil
}

func (h *Handler) yearly(ctx context.Context, input *YearlySummaryInput) (*YearlySummaryOutput, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("year", input.Year)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("yearlySummaryMs")
	}
	summary, err := h.SummaryService.YearlySummary(ctx, ledger.DefaultUserID, input.Year)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, problem.FromError(err)
	}

	body := YearlySummaryBody{
		Year:   summary.Year,
		Months: make([]MonthTotals, len(summary.Months)),
		Totals: totalsFrom(summary.Total),
	}
	for i, m := range summary.Months {
		body.Months[i] = MonthTotals{Month: int(m.Month), Totals: totalsFrom(m.Summary)}
	}
	return &YearlySummaryOutput{Body: body}, nil
}
