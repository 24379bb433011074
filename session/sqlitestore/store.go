package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/jrsteele09/podmixer-console/internal/errors"
	"github.com/jrsteele09/podmixer-console/session"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// Store keeps the token in the kv table of a SQLite database under the key
// session.StorageKey.
type Store struct {
	db     *sql.DB
	closed atomic.Bool
}

var _ session.Store = (*Store)(nil)

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("[sqlitestore Open] failed to create %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("[sqlitestore Open] %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY between them
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("[sqlitestore Open] failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.closed.Store(true)
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context) (string, error) {
	if s.closed.Load() {
		return "", errors.Wrapf(errors.ErrStoreClosed, "[sqlitestore Get]")
	}
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, session.StorageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.ErrTokenNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "[sqlitestore Get]")
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, token string) error {
	if s.closed.Load() {
		return errors.Wrapf(errors.ErrStoreClosed, "[sqlitestore Set]")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		session.StorageKey, token)
	if err != nil {
		return errors.Wrapf(err, "[sqlitestore Set]")
	}
	return nil
}

func (s *Store) Delete(ctx context.Context) error {
	if s.closed.Load() {
		return errors.Wrapf(errors.ErrStoreClosed, "[sqlitestore Delete]")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, session.StorageKey); err != nil {
		return errors.Wrapf(err, "[sqlitestore Delete]")
	}
	return nil
}
