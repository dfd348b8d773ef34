package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/pocket-ledger/internal/operator"
	"github.com/carson-networks/pocket-ledger/internal/storage"
)

type testEnv struct {
	service *Service
	storage *storage.Storage
	path    string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	path := filepath.Join(t.TempDir(), "transactions.json")
	store, err := storage.NewStorage(path, logger)
	require.NoError(t, err)

	op := operator.NewOperatorDelegator(store, 1, 10, logger)
	op.Start()
	t.Cleanup(op.Stop)

	svc := NewService(store, op, NewUserService(bcrypt.MinCost, logger), time.UTC, logger)
	return testEnv{service: svc, storage: store, path: path}
}
