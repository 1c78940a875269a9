// ABOUTME: Local Badger key/value backend for intervals data.
// ABOUTME: Supports an on-disk directory or a purely in-memory database.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v3"
)

// BadgerBackend stores documents in a Badger database.
type BadgerBackend struct {
	db *badger.DB
}

// Compile-time check that BadgerBackend implements Backend.
var _ Backend = (*BadgerBackend)(nil)

// OpenBadger opens or creates a Badger database in dir.
func OpenBadger(dir string, logger *log.Logger) (*BadgerBackend, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger(logger))
	return openBadger(opts)
}

// OpenBadgerInMemory opens a Badger database that lives only in memory.
func OpenBadgerInMemory(logger *log.Logger) (*BadgerBackend, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(badgerLogger(logger))
	return openBadger(opts)
}

func openBadger(opts badger.Options) (*BadgerBackend, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerBackend{db: db}, nil
}

// Get returns the value stored at key, or nil if it was never written.
func (b *BadgerBackend) Get(key string) ([]byte, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	return data, err
}

// Set stores data at key.
func (b *BadgerBackend) Set(key string, data []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Close closes the database.
func (b *BadgerBackend) Close() error {
	return b.db.Close()
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "intervals")
}

// badgerLogger routes Badger's internal logging through logger, or
// silences it when logger is nil.
func badgerLogger(logger *log.Logger) badger.Logger {
	if logger == nil {
		return nil
	}
	return logAdapter{logger.WithPrefix("badger")}
}

type logAdapter struct {
	l *log.Logger
}

func (a logAdapter) Errorf(format string, args ...any)   { a.l.Errorf(format, args...) }
func (a logAdapter) Warningf(format string, args ...any) { a.l.Warnf(format, args...) }
func (a logAdapter) Infof(format string, args ...any)    { a.l.Debugf(format, args...) }
func (a logAdapter) Debugf(format string, args ...any)   { a.l.Debugf(format, args...) }
