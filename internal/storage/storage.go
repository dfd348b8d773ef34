package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
)

// Storage owns the ledger document. Reads share the in-memory copy under a
// read lock; writes go through Write, which holds the write lock until the
// returned Writer is committed or rolled back.
type Storage struct {
	path   string
	logger *logrus.Logger

	mu     sync.RWMutex
	doc    document
	nextID int
}

// NewStorage opens the document at path, creating it with defaults when it
// does not exist yet.
//
// When the file exists but cannot be read or decoded, NewStorage still
// returns a usable Storage holding the default document, together with a
// *ledger.PersistenceError. The unreadable file is moved aside first so a
// later write does not destroy it. Callers decide whether to carry on.
func NewStorage(path string, logger *logrus.Logger) (*Storage, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Storage{
		path:   path,
		logger: logger,
	}
	err := s.load()
	s.nextID = s.doc.maxID() + 1
	return s, err
}

// Path returns the location of the backing document.
func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.doc = defaultDocument()
		if err := writeDocument(s.path, s.doc); err != nil {
			return &ledger.PersistenceError{Op: "create", Path: s.path, Err: err}
		}
		s.logger.WithField("path", s.path).Info("Storage.load.created")
		return nil
	}
	if err != nil {
		return s.degrade("read", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return s.degrade("parse", err)
	}
	if err := doc.normalize(); err != nil {
		return s.degrade("validate", err)
	}

	s.doc = doc
	s.logger.WithFields(logrus.Fields{
		"path":         s.path,
		"transactions": len(doc.Transactions),
	}).Info("Storage.load.complete")
	return nil
}

func (s *Storage) degrade(op string, cause error) error {
	s.doc = defaultDocument()

	quarantine := fmt.Sprintf("%s.corrupt-%d", s.path, time.Now().Unix())
	entry := s.logger.WithError(cause).WithField("path", s.path)
	if err := os.Rename(s.path, quarantine); err != nil {
		entry.WithField("renameError", err.Error()).Error("Storage.load.quarantine failed")
	} else {
		entry = entry.WithField("quarantine", quarantine)
	}
	entry.Warn("Storage.load.degraded to default document")

	return &ledger.PersistenceError{Op: op, Path: s.path, Err: cause}
}
