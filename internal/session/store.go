// Package session persists the MTProto session using SQLite so the relay
// survives restarts without re-authenticating.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tdsession "github.com/gotd/td/session"
	_ "modernc.org/sqlite"
)

// Store keeps the serialized session in a single-row table. It implements
// the Telegram client's session storage interface.
type Store struct {
	db *sql.DB
}

var _ tdsession.Storage = (*Store)(nil)

// NewStore creates a new session store at dbPath.
func NewStore(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create table if not exists
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS mtproto_session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			data BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadSession returns the stored session bytes, or the storage not-found
// sentinel when no login has been performed yet.
func (s *Store) LoadSession(ctx context.Context) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM mtproto_session WHERE id = 1`)

	var data []byte
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, tdsession.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if len(data) == 0 {
		return nil, tdsession.ErrNotFound
	}
	return data, nil
}

// StoreSession saves the session bytes, replacing any previous login.
func (s *Store) StoreSession(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mtproto_session (id, data, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}
