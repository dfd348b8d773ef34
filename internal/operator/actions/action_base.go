package actions

import (
	"context"

	"github.com/carson-networks/pocket-ledger/internal/storage"
)

// IAction is a unit of work run by an Operator against a staged document.
// Returning an error rolls the whole action back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
