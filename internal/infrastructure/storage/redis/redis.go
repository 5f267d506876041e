// Package redis is the networked backend of the key-value storage.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
	"golang.org/x/exp/slog"

	"studentkeeper/internal/infrastructure/storage"
)

const scanCount = 100

// Options are the connection settings of the redis backend.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Storage keeps every key of a namespace under "<namespace>:<key>".
type Storage struct {
	client    *redis.Client
	namespace string
	log       *slog.Logger
}

// New connects to redis and checks the connection.
func New(ctx context.Context, opts Options, namespace string, log *slog.Logger) (*Storage, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis storage: empty address")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis storage: ping %s: %w", opts.Addr, err)
	}

	return NewWithClient(client, namespace, log), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, namespace string, log *slog.Logger) *Storage {
	return &Storage{
		client:    client,
		namespace: namespace,
		log:       log.With(slog.String("component", "redis_storage")),
	}
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// matchPattern selects every key of the namespace and nothing else,
// even when the namespace itself contains glob metacharacters.
func (s *Storage) matchPattern() string {
	return globEscaper.Replace(s.namespace) + ":*"
}

func (s *Storage) prefixKey(key string) string {
	return s.namespace + ":" + key
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.prefixKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis storage: get %s: %w", key, err)
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.prefixKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis storage: set %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefixKey(key)).Err(); err != nil {
		return fmt.Errorf("redis storage: delete %s: %w", key, err)
	}
	return nil
}

// Clear deletes only the keys of this namespace. It never flushes the database.
func (s *Storage) Clear(ctx context.Context) error {
	var (
		cursor  uint64
		removed int64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.matchPattern(), scanCount).Result()
		if err != nil {
			return fmt.Errorf("redis storage: scan namespace: %w", err)
		}
		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("redis storage: clear namespace: %w", err)
			}
			removed += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	s.log.Debug("namespace cleared", "namespace", s.namespace, "keys", removed)
	return nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}
