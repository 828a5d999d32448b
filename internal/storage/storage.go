// Package storage is the persistent key-value store that holds the
// logged-in identity between runs.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
	perrors "github.com/zhubert/snappy/internal/errors"
	"github.com/zhubert/snappy/internal/logger"
)

// Store is a byte-oriented key-value store.
// Get returns an error of kind NotFound when the key is absent.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// BadgerStore implements Store on top of a Badger database.
type BadgerStore struct {
	db  *badger.DB
	log *slog.Logger
}

// badgerLogger routes Badger's log output to the storage component logger.
// Badger's info lines are chatty, so they go out at debug.
type badgerLogger struct {
	log *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(badgerMessage(format, args))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn(badgerMessage(format, args))
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.Debug(badgerMessage(format, args))
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.Debug(badgerMessage(format, args))
}

func badgerMessage(format string, args []any) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}

// Open opens (creating if needed) a Badger store in dir.
func Open(dir string) (*BadgerStore, error) {
	return open(dir, badgerOptions(dir))
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*BadgerStore, error) {
	return open(":memory:", badgerOptions("").WithInMemory(true))
}

func badgerOptions(dir string) badger.Options {
	return badger.DefaultOptions(dir).
		WithLogger(badgerLogger{log: logger.WithComponent("storage")})
}

func open(dir string, opts badger.Options) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, perrors.StorageOpenFailed(dir, err)
	}
	log := logger.WithComponent("storage")
	log.Debug("store opened", "dir", dir)
	return &BadgerStore{db: db, log: log}, nil
}

// Get returns a copy of the value stored under key.
func (s *BadgerStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, perrors.StorageMiss(key)
	}
	if err != nil {
		return nil, perrors.E(perrors.Op("storage.Get"), perrors.KindStorage, fmt.Sprintf("failed to read %q", key), err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *BadgerStore) Set(key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return perrors.E(perrors.Op("storage.Set"), perrors.KindStorage, fmt.Sprintf("failed to write %q", key), err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *BadgerStore) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return perrors.E(perrors.Op("storage.Delete"), perrors.KindStorage, fmt.Sprintf("failed to delete %q", key), err)
	}
	return nil
}

// Close flushes and closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
