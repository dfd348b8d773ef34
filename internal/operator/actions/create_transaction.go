package actions

import (
	"context"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
	"github.com/carson-networks/pocket-ledger/internal/storage"
)

// CreateTransaction appends a normalized transaction. Created holds the
// stored record, id included, once the action has been processed.
type CreateTransaction struct {
	Transaction ledger.Transaction
	Created     ledger.Transaction
	IAction
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	created, err := writer.AppendTransaction(ctx, t.Transaction)
	if err != nil {
		return err
	}

	t.Created = created
	return nil
}
