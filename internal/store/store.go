package store

import (
	"encoding/json/v2"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/librasys/librasys-server/internal/domain"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Generic entities
	Accounts *Entity[domain.Account]
	Sessions *Entity[domain.Session]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	// Initialize generic entities
	store.initAccounts()
	store.initSessions()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// Helper methods for database operations.

// get retrieves a value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a value by key.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// delete removes a key from the database.
func (s *Store) delete(key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// initAccounts initializes the Accounts entity on the store.
// Accounts are keyed directly by username, so no secondary index is needed.
func (s *Store) initAccounts() {
	s.Accounts = NewEntity[domain.Account](s, "account:")
}

// initSessions initializes the Sessions entity on the store.
// The token index lets the refresh flow find a session by its token hash.
func (s *Store) initSessions() {
	s.Sessions = NewEntity[domain.Session](s, "session:").
		WithIndex("token", func(sess *domain.Session) []string {
			return []string{sess.RefreshTokenHash}
		})
}
