package storage

import (
	"context"
	"errors"
	"slices"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
)

// ErrWriterClosed is returned when a Writer is used after Commit or Rollback.
var ErrWriterClosed = errors.New("storage: writer already committed or rolled back")

// Writer stages changes to a private copy of the document. Nothing is
// visible to readers or written to disk until Commit.
type Writer struct {
	storage *Storage
	staged  document
	nextID  int
	closed  bool
}

// Write takes the write lock and returns a Writer over a copy of the current
// document. The lock is held until Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	return &Writer{
		storage: s,
		staged: document{
			Transactions: slices.Clone(s.doc.Transactions),
			Settings:     s.doc.Settings,
		},
		nextID: s.nextID,
	}, nil
}

// AppendTransaction assigns the next id to tx and stages it.
func (w *Writer) AppendTransaction(_ context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	if w.closed {
		return ledger.Transaction{}, ErrWriterClosed
	}
	if _, _, err := ledger.ParseAmount(tx.Amount); err != nil {
		return ledger.Transaction{}, err
	}

	tx.ID = w.nextID
	w.nextID++
	if w.staged.Transactions == nil {
		w.staged.Transactions = []ledger.Transaction{}
	}
	w.staged.Transactions = append(w.staged.Transactions, tx)
	return tx, nil
}

// SaveSettings stages new settings.
func (w *Writer) SaveSettings(_ context.Context, settings ledger.Settings) error {
	if w.closed {
		return ErrWriterClosed
	}
	if _, err := ledger.ParseTheme(string(settings.Theme)); err != nil {
		return err
	}
	w.staged.Settings = settings
	return nil
}

// Commit persists the staged document and publishes it to readers. The write
// lock is released whether or not persisting succeeds; on failure the
// in-memory document is left untouched.
func (w *Writer) Commit() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true
	s := w.storage
	defer s.mu.Unlock()

	// ids handed out by a failed commit are not reused either
	s.nextID = w.nextID

	if err := writeDocument(s.path, w.staged); err != nil {
		s.logger.WithError(err).WithField("path", s.path).Error("Storage.Writer.Commit failed")
		return &ledger.PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	s.doc = w.staged
	return nil
}

// Rollback discards the staged changes and releases the write lock.
func (w *Writer) Rollback() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true
	w.storage.mu.Unlock()
	return nil
}
