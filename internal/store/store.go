// Package store persists one UserRecord per Reddit user id in an embedded
// BadgerDB key-value store. Records are validated on both sides of the
// storage boundary: before every write and after every read.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/redditdevs/VerifyBot_Go/internal/domain"
)

const keyPrefix = "user:"

// Store defines durable persistence for user link records.
type Store interface {
	// Get returns the record for the user, or domain.ErrRecordNotFound.
	// A stored value that fails validation is a fatal
	// domain.ErrValidationFailed, never silently dropped.
	Get(ctx context.Context, userID string) (*domain.UserRecord, error)

	// Set validates the record (applying defaults), writes it, and returns
	// the safe projection for UI consumption.
	Set(ctx context.Context, userID string, record domain.UserRecord) (domain.SafeUserRecord, error)

	// Delete removes the record. Deleting an absent record is a no-op.
	Delete(ctx context.Context, userID string) error

	// CheckHealth verifies the database can serve reads.
	CheckHealth(ctx context.Context) error

	Close() error
}

type badgerStore struct {
	db *badger.DB
}

// Open opens (creating if needed) a record store at dir.
func Open(dir string, log *slog.Logger) (Store, error) {
	opts := badger.DefaultOptions(dir).
		WithSyncWrites(true).
		WithNumVersionsToKeep(1)
	if log != nil {
		opts = opts.WithLogger(&badgerLogger{logger: log})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	return &badgerStore{db: db}, nil
}

// OpenInMemory opens a store with no disk persistence, for tests.
func OpenInMemory() (Store, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithNumVersionsToKeep(1)
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory record store: %w", err)
	}
	return &badgerStore{db: db}, nil
}

func recordKey(userID string) []byte {
	return []byte(keyPrefix + userID)
}

func (s *badgerStore) Get(ctx context.Context, userID string) (*domain.UserRecord, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(userID))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record for %s: %w", userID, err)
	}

	var record domain.UserRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("%w: malformed stored record for %s: %v", domain.ErrValidationFailed, userID, err)
	}
	if err := domain.ValidateStoredRecord(&record); err != nil {
		return nil, fmt.Errorf("stored record for %s: %w", userID, err)
	}
	return &record, nil
}

func (s *badgerStore) Set(ctx context.Context, userID string, record domain.UserRecord) (domain.SafeUserRecord, error) {
	if err := domain.ValidateRecord(&record); err != nil {
		return domain.SafeUserRecord{}, err
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return domain.SafeUserRecord{}, fmt.Errorf("failed to serialize record: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(userID), raw)
	})
	if err != nil {
		return domain.SafeUserRecord{}, fmt.Errorf("failed to write record for %s: %w", userID, err)
	}
	return record.Safe(), nil
}

func (s *badgerStore) Delete(ctx context.Context, userID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(recordKey(userID))
	})
	if err != nil {
		return fmt.Errorf("failed to delete record for %s: %w", userID, err)
	}
	return nil
}

func (s *badgerStore) CheckHealth(ctx context.Context) error {
	if s.db.IsClosed() {
		return errors.New("record store is closed")
	}
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(recordKey("__health__"))
		return err
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("record store read failed: %w", err)
	}
	return nil
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
