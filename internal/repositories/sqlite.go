package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"
)

// SQLiteSlot stores its value in the slots table created by the shared migrations.
type SQLiteSlot struct {
	db     *sql.DB
	key    string
	mu     sync.Mutex
	ownsDB bool
}

// NewSQLiteSlot creates a [SQLiteSlot] for key on a migrated database connection.
//
// The caller keeps ownership of db.
func NewSQLiteSlot(db *sql.DB, key string) *SQLiteSlot {
	return &SQLiteSlot{db: db, key: key}
}

// Load returns the slot value or nil when no row exists for the key.
func (s *SQLiteSlot) Load() ([]byte, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM slots WHERE key = ?", s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query slot %s: %w", s.key, err)
	}
	return []byte(value), nil
}

// Update runs the read-modify-write inside one transaction.
func (s *SQLiteSlot) Update(fn func(current []byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current []byte
	var value string
	err = tx.QueryRow("SELECT value FROM slots WHERE key = ?", s.key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("failed to query slot %s: %w", s.key, err)
	default:
		current = []byte(value)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}

	query := `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := tx.Exec(query, s.key, string(next), time.Now()); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit slot %s: %w", s.key, err)
	}
	return nil
}

// Close closes the database only when the slot opened it itself (see [OpenSlot]).
func (s *SQLiteSlot) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}
