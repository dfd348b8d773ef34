package operator

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
	"github.com/carson-networks/pocket-ledger/internal/operator/actions"
	"github.com/carson-networks/pocket-ledger/internal/storage"
)

func newTestDelegator(t *testing.T, workers int) (*OperatorDelegator, *storage.Storage) {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	store, err := storage.NewStorage(filepath.Join(t.TempDir(), "transactions.json"), logger)
	require.NoError(t, err)

	d := NewOperatorDelegator(store, workers, 10, logger)
	d.Start()
	t.Cleanup(d.Stop)
	return d, store
}

type failingAction struct{}

func (failingAction) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.AppendTransaction(ctx, ledger.Transaction{
		Amount: "1.00", Description: "x", Type: ledger.TransactionTypeIncome, UserID: 1, Date: time.Now(),
	}); err != nil {
		return err
	}
	return errors.New("abort")
}

// blockingAction appends a transaction once release is closed, signalling
// entered when a worker starts on it.
type blockingAction struct {
	entered chan struct{}
	release chan struct{}
}

func newBlockingAction() *blockingAction {
	return &blockingAction{entered: make(chan struct{}), release: make(chan struct{})}
}

func (b *blockingAction) Perform(ctx context.Context, writer *storage.Writer) error {
	close(b.entered)
	<-b.release
	_, err := writer.AppendTransaction(ctx, ledger.Transaction{
		Amount: "1.00", Description: "slow", Type: ledger.TransactionTypeIncome, UserID: 1, Date: time.Now(),
	})
	return err
}

func tick() *actions.CreateTransaction {
	return &actions.CreateTransaction{Transaction: ledger.Transaction{
		Amount: "1.00", Description: "tick", Type: ledger.TransactionTypeIncome, UserID: 1, Date: time.Now(),
	}}
}

func TestProcess_CreateTransaction(t *testing.T) {
	d, store := newTestDelegator(t, 1)

	action := &actions.CreateTransaction{Transaction: ledger.Transaction{
		Amount:      "12.50",
		Description: "Coffee",
		Type:        ledger.TransactionTypeExpense,
		Date:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UserID:      ledger.DefaultUserID,
	}}
	require.NoError(t, d.Process(context.Background(), action))

	assert.Equal(t, 1, action.Created.ID)
	stored, err := store.FindTransaction(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Coffee", stored.Description)
}

func TestProcess_SaveSettings(t *testing.T) {
	d, store := newTestDelegator(t, 1)

	require.NoError(t, d.Process(context.Background(), &actions.SaveSettings{Settings: ledger.Settings{Theme: ledger.ThemeLight}}))

	settings, err := store.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ledger.ThemeLight, settings.Theme)
}

func TestProcess_FailedActionRollsBack(t *testing.T) {
	d, store := newTestDelegator(t, 1)

	err := d.Process(context.Background(), failingAction{})
	assert.EqualError(t, err, "abort")

	count, err := store.CountTransactions(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProcess_ConcurrentCallersAreSerialized(t *testing.T) {
	d, store := newTestDelegator(t, 4)
	const callers = 25

	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- d.Process(context.Background(), &actions.CreateTransaction{Transaction: ledger.Transaction{
				Amount: "1.00", Description: "tick", Type: ledger.TransactionTypeIncome, UserID: 1, Date: time.Now(),
			}})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	count, err := store.CountTransactions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, callers, count)
}

func TestProcess_AfterStop(t *testing.T) {
	d, _ := newTestDelegator(t, 1)
	d.Stop()

	err := d.Process(context.Background(), &actions.SaveSettings{Settings: ledger.Settings{Theme: ledger.ThemeDark}})
	assert.ErrorIs(t, err, ErrStopped)
}

func TestProcess_CancelledContext(t *testing.T) {
	d, _ := newTestDelegator(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Process(ctx, &actions.SaveSettings{Settings: ledger.Settings{Theme: ledger.ThemeDark}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcess_CancelAfterPickupReportsCommit(t *testing.T) {
	d, store := newTestDelegator(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	action := newBlockingAction()

	errCh := make(chan error, 1)
	go func() { errCh <- d.Process(ctx, action) }()

	<-action.entered
	cancel()
	time.Sleep(10 * time.Millisecond)
	close(action.release)

	// the action was committed, so the caller must not be told otherwise
	assert.NoError(t, <-errCh)
	count, err := store.CountTransactions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestProcess_CancelWhileQueuedDropsAction(t *testing.T) {
	d, store := newTestDelegator(t, 1)
	busy := newBlockingAction()

	busyErr := make(chan error, 1)
	go func() { busyErr <- d.Process(context.Background(), busy) }()
	<-busy.entered

	ctx, cancel := context.WithCancel(context.Background())
	queuedErr := make(chan error, 1)
	go func() { queuedErr <- d.Process(ctx, tick()) }()
	time.Sleep(10 * time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-queuedErr, context.Canceled)
	close(busy.release)
	require.NoError(t, <-busyErr)

	// runs after the abandoned item has left the queue
	require.NoError(t, d.Process(context.Background(), tick()))

	count, err := store.CountTransactions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
