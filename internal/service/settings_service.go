package service

import (
	"context"
	"fmt"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
	"github.com/carson-networks/pocket-ledger/internal/operator"
	"github.com/carson-networks/pocket-ledger/internal/operator/actions"
	"github.com/carson-networks/pocket-ledger/internal/storage"
)

type SettingsService struct {
	storage  *storage.Storage
	operator *operator.OperatorDelegator
}

func NewSettingsService(store *storage.Storage, op *operator.OperatorDelegator) *SettingsService {
	return &SettingsService{storage: store, operator: op}
}

// GetSettings returns the stored settings, dark theme when none was saved.
func (s *SettingsService) GetSettings(ctx context.Context) (ledger.Settings, error) {
	return s.storage.Settings(ctx)
}

// SetTheme validates and persists theme.
func (s *SettingsService) SetTheme(ctx context.Context, theme string) (ledger.Settings, error) {
	parsed, err := ledger.ParseTheme(theme)
	if err != nil {
		return ledger.Settings{}, err
	}

	settings := ledger.Settings{Theme: parsed}
	if err := s.operator.Process(ctx, &actions.SaveSettings{Settings: settings}); err != nil {
		return ledger.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}
