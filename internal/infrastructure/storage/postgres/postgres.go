// Package postgres is the shared-database backend of the key-value storage.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"studentkeeper/internal/infrastructure/migration"
	"studentkeeper/internal/infrastructure/storage"
)

type Storage struct {
	pool      *pgxpool.Pool
	namespace string
	log       *slog.Logger
}

// New migrates the database behind dsn and opens a connection pool for namespace.
func New(ctx context.Context, dsn, namespace string, log *slog.Logger) (*Storage, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres storage: empty dsn")
	}

	if err := migration.NewMigration(migration.DialectPostgres, migration.PostgresURL(dsn), migration.DefaultEngine).Up(); err != nil {
		return nil, fmt.Errorf("postgres storage: migrate: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres storage: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres storage: ping: %w", err)
	}

	return &Storage{
		pool:      pool,
		namespace: namespace,
		log:       log.With("component", "postgres_storage"),
	}, nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM kv WHERE namespace = $1 AND key = $2`

	var value []byte
	err := s.pool.QueryRow(ctx, query, s.namespace, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrKeyNotFound
	}
	if err != nil {
		s.log.Error("failed to get key", "key", key, "error", err)
		return nil, fmt.Errorf("postgres storage: get %s: %w", key, err)
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	const query = `
		INSERT INTO kv (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := s.pool.Exec(ctx, query, s.namespace, key, value); err != nil {
		s.log.Error("failed to set key", "key", key, "error", err)
		return fmt.Errorf("postgres storage: set %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM kv WHERE namespace = $1 AND key = $2`

	if _, err := s.pool.Exec(ctx, query, s.namespace, key); err != nil {
		return fmt.Errorf("postgres storage: delete %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Clear(ctx context.Context) error {
	const query = `DELETE FROM kv WHERE namespace = $1`

	tag, err := s.pool.Exec(ctx, query, s.namespace)
	if err != nil {
		return fmt.Errorf("postgres storage: clear: %w", err)
	}
	s.log.Debug("namespace cleared", "namespace", s.namespace, "keys", tag.RowsAffected())
	return nil
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}
