// Package memory is an in-process storage backend, used for tests and throwaway sessions.
package memory

import (
	"bytes"
	"context"
	"sync"

	"studentkeeper/internal/infrastructure/storage"
)

type Storage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func New() *Storage {
	return &Storage{values: make(map[string][]byte)}
}

func (s *Storage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return bytes.Clone(v), nil
}

func (s *Storage) Set(_ context.Context, key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = bytes.Clone(value)
	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

func (s *Storage) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(map[string][]byte)
	return nil
}

func (s *Storage) Close() error {
	return nil
}
