package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
	"github.com/carson-networks/pocket-ledger/internal/storage"
)

const (
	transactionsSheet = "Transactions"
	summarySheet      = "Summary"
	exportDateLayout  = "2006-01-02 15:04:05"
)

var transactionHeaders = []string{"ID", "Date", "Type", "Description", "Recipient", "Amount"}

var summaryHeaders = []string{"Month", "Income", "Expense", "Investment"}

// ExportService renders the ledger as an XLSX workbook.
type ExportService struct {
	storage  *storage.Storage
	location *time.Location
}

func NewExportService(store *storage.Storage, location *time.Location) *ExportService {
	if location == nil {
		location = time.Local
	}
	return &ExportService{storage: store, location: location}
}

// ExportTransactions writes userID's transactions, newest first, to a
// workbook. When year is non-nil only that year is exported and a second
// sheet holds its monthly summary.
func (s *ExportService) ExportTransactions(ctx context.Context, userID int, year *int) ([]byte, error) {
	if year != nil {
		if err := validateYear(*year); err != nil {
			return nil, err
		}
	}

	txs, err := s.storage.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if year != nil {
		filtered := txs[:0:0]
		for _, tx := range txs {
			if tx.Date.In(s.location).Year() == *year {
				filtered = append(filtered, tx)
			}
		}
		txs = filtered
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	if err := s.writeTransactions(f, txs, headerStyle); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if year != nil {
		summary := ledger.YearlySummary(txs, *year, s.location)
		if err := writeSummary(f, summary, headerStyle); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ExportService) writeTransactions(f *excelize.File, txs []ledger.Transaction, headerStyle int) error {
	if err := writeHeader(f, transactionsSheet, transactionHeaders, headerStyle); err != nil {
		return err
	}
	_ = f.SetColWidth(transactionsSheet, "B", "B", 20)
	_ = f.SetColWidth(transactionsSheet, "D", "E", 30)

	for i, tx := range txs {
		row := i + 2
		recipient := ""
		if tx.Recipient != nil {
			recipient = *tx.Recipient
		}
		values := []any{
			tx.ID,
			tx.Date.In(s.location).Format(exportDateLayout),
			string(tx.Type),
			tx.Description,
			recipient,
		}
		if err := f.SetSheetRow(transactionsSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		if err := f.SetCellDefault(transactionsSheet, fmt.Sprintf("F%d", row), tx.Amount); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, summary ledger.YearSummary, headerStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	if err := writeHeader(f, summarySheet, summaryHeaders, headerStyle); err != nil {
		return err
	}

	for i, month := range summary.Months {
		if err := writeSummaryRow(f, i+2, month.Month.String(), month.Summary); err != nil {
			return err
		}
	}
	return writeSummaryRow(f, len(summary.Months)+2, "Total", summary.Total)
}

// writeSummaryRow writes a summary row. Amounts go in as their exact decimal
// text; SetCellDefault stores numeric text as a number cell without a float
// round trip.
func writeSummaryRow(f *excelize.File, row int, label string, s ledger.Summary) error {
	if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), label); err != nil {
		return err
	}
	for i, amount := range []decimal.Decimal{s.Income, s.Expense, s.Investment} {
		cell, err := excelize.CoordinatesToCellName(i+2, row)
		if err != nil {
			return err
		}
		if err := f.SetCellDefault(summarySheet, cell, ledger.CanonicalAmount(amount)); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}
