package operator

import (
	"context"
	"sync/atomic"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/pocket-ledger/internal/operator/actions"
	"github.com/carson-networks/pocket-ledger/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage *storage.Storage
	queue   chan ActionItem
	logger  *logrus.Logger
}

func NewOperator(s *storage.Storage, queue chan ActionItem, logger *logrus.Logger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		logger:  logger,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	// the caller gave up while the item sat in the queue and nobody is waiting
	if !item.state.CompareAndSwap(itemQueued, itemTaken) {
		return
	}
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		_ = writer.Rollback()
		o.logFailure("Operator.processItem.Perform", item.action, err)
		item.response <- ActionItemResponse{err: err}
		return
	}

	if err = writer.Commit(); err != nil {
		o.logFailure("Operator.processItem.Commit", item.action, err)
		item.response <- ActionItemResponse{err: err}
		return
	}

	item.response <- ActionItemResponse{}
}

func (o *Operator) logFailure(msg string, action actions.IAction, err error) {
	entry := o.logger.WithError(err)
	if o.logger.IsLevelEnabled(logrus.DebugLevel) {
		entry = entry.WithField("action", spew.Sdump(action))
	}
	entry.Warn(msg)
}

// Item states. Exactly one of the worker (itemTaken) or the caller
// (itemAbandoned) moves an item out of itemQueued.
const (
	itemQueued int32 = iota
	itemTaken
	itemAbandoned
)

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
	state    *atomic.Int32
}

type ActionItemResponse struct {
	err error
}
