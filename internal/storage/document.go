package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
)

// document is the on-disk shape of the ledger file.
type document struct {
	Transactions []ledger.Transaction `json:"transactions"`
	Settings     ledger.Settings      `json:"settings"`
}

func defaultDocument() document {
	return document{
		Transactions: []ledger.Transaction{},
		Settings:     ledger.Settings{Theme: ledger.DefaultTheme},
	}
}

// legacyTypes maps the labels written by earlier clients of the same file format.
var legacyTypes = map[string]ledger.TransactionType{
	"revenus":        ledger.TransactionTypeIncome,
	"dépenses":       ledger.TransactionTypeExpense,
	"investissement": ledger.TransactionTypeInvestment,
}

// normalize validates a freshly decoded document in place.
func (d *document) normalize() error {
	if d.Transactions == nil {
		d.Transactions = []ledger.Transaction{}
	}

	seen := make(map[int]struct{}, len(d.Transactions))
	for i := range d.Transactions {
		tx := &d.Transactions[i]

		if legacy, ok := legacyTypes[string(tx.Type)]; ok {
			tx.Type = legacy
		}
		if _, ok := ledger.ParseTransactionType(string(tx.Type)); !ok {
			return fmt.Errorf("transaction %d: unknown type %q", tx.ID, tx.Type)
		}
		if _, _, err := ledger.ParseAmount(tx.Amount); err != nil {
			return fmt.Errorf("transaction %d: %w", tx.ID, err)
		}
		if tx.ID <= 0 {
			return fmt.Errorf("transaction at index %d: id must be positive", i)
		}
		if _, dup := seen[tx.ID]; dup {
			return fmt.Errorf("transaction %d: duplicate id", tx.ID)
		}
		seen[tx.ID] = struct{}{}
	}

	d.Settings = d.Settings.Normalized()
	if _, err := ledger.ParseTheme(string(d.Settings.Theme)); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	return nil
}

func (d *document) maxID() int {
	highest := 0
	for _, tx := range d.Transactions {
		if tx.ID > highest {
			highest = tx.ID
		}
	}
	return highest
}

// writeDocument replaces the file at path with doc. The content goes to a
// temp file in the same directory first, so readers never see a partial file.
func writeDocument(path string, doc document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err = tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
