package operator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/pocket-ledger/internal/operator/actions"
	"github.com/carson-networks/pocket-ledger/internal/storage"
)

// ErrStopped is returned by Process once Stop has been called.
var ErrStopped = errors.New("operator: stopped")

// OperatorDelegator manages the queue, starts/stops Operators (workers), and enqueues items.
type OperatorDelegator struct {
	storage    *storage.Storage
	queue      chan ActionItem
	numWorkers int
	logger     *logrus.Logger

	wg       sync.WaitGroup
	stopOnce sync.Once
	// guards queue against sends after close
	stopMu  sync.RWMutex
	stopped bool
}

func NewOperatorDelegator(s *storage.Storage, numWorkers, queueSize int, logger *logrus.Logger) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OperatorDelegator{
		storage:    s,
		queue:      make(chan ActionItem, queueSize),
		numWorkers: numWorkers,
		logger:     logger,
	}
}

func (d *OperatorDelegator) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(d.storage, d.queue, d.logger)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

// Stop drains the queue and waits for in-flight actions to finish.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		d.stopMu.Lock()
		d.stopped = true
		close(d.queue)
		d.stopMu.Unlock()
		d.wg.Wait()
	})
}

// Process enqueues action and blocks until it has been committed or rolled
// back. If ctx ends while the action is still queued, the action is dropped
// and ctx.Err() is returned. Once a worker has taken it, Process waits for
// its result, so a nil error always means the action was committed.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
		state:    &atomic.Int32{},
	}

	d.stopMu.RLock()
	if d.stopped {
		d.stopMu.RUnlock()
		return ErrStopped
	}
	select {
	case d.queue <- item:
	case <-ctx.Done():
		d.stopMu.RUnlock()
		return ctx.Err()
	}
	d.stopMu.RUnlock()

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		if item.state.CompareAndSwap(itemQueued, itemAbandoned) {
			return ctx.Err()
		}
		// a worker already owns the item; report what it actually did
		resp := <-respCh
		return resp.err
	}
}
