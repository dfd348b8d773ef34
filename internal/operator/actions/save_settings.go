package actions

import (
	"context"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
	"github.com/carson-networks/pocket-ledger/internal/storage"
)

type SaveSettings struct {
	Settings ledger.Settings
	IAction
}

func (s *SaveSettings) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.SaveSettings(ctx, s.Settings)
}
