// Package sqlite is the local database backend of the key-value storage.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"studentkeeper/internal/infrastructure/migration"
	"studentkeeper/internal/infrastructure/storage"
)

type Storage struct {
	db        *sql.DB
	namespace string
	log       *slog.Logger
}

// Open migrates the database file at path and opens it for the given namespace.
func Open(ctx context.Context, path, namespace string, log *slog.Logger) (*Storage, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite storage: empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("sqlite storage: create dir: %w", err)
	}

	if err := migration.NewMigration(migration.DialectSQLite, migration.SQLiteURL(path), migration.DefaultEngine).Up(); err != nil {
		return nil, fmt.Errorf("sqlite storage: migrate: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite storage: ping: %w", err)
	}

	log = log.With(slog.String("component", "sqlite_storage"))
	log.Debug("sqlite storage opened", "path", path, "namespace", namespace)

	return &Storage{db: db, namespace: namespace, log: log}, nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE namespace = ? AND key = ?`,
		s.namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: get %s: %w", key, err)
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (namespace, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (namespace, key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at
	`, s.namespace, key, value)
	if err != nil {
		return fmt.Errorf("sqlite storage: set %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM kv WHERE namespace = ? AND key = ?`, s.namespace, key)
	if err != nil {
		return fmt.Errorf("sqlite storage: delete %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Clear(ctx context.Context) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE namespace = ?`, s.namespace)
	if err != nil {
		return fmt.Errorf("sqlite storage: clear: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		s.log.Debug("namespace cleared", "namespace", s.namespace, "keys", n)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
