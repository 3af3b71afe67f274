// Package session keeps the CLI's login state in a local SQLite file.
package session

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Keys stored in the session table.
const (
	KeyAccessToken = "access_token"
	KeyUsername    = "username"
	KeyServer      = "server"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Store struct {
	db *sql.DB
}

// Open creates the session file if needed and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("session dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, "migrations")
}

// Get returns common.ErrorNotFound when key was never set.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("session %s: %w", key, common.ErrorNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get session[%s]: %w", key, err)
	}
	return value, nil
}

// Save writes all values in one transaction.
func (s *Store) Save(ctx context.Context, values map[string]string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for k, v := range values {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO session (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, k, v)
			if err != nil {
				return fmt.Errorf("set session[%s]: %w", k, err)
			}
		}
		return nil
	})
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
