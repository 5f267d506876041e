// Package storage defines the key-value port the student store persists through.
package storage

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrInvalidKey  = errors.New("invalid key")
)

// Storage is a namespaced key-value store holding opaque byte payloads.
type Storage interface {
	// Get returns ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the whole value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every key of the namespace the storage was opened with.
	Clear(ctx context.Context) error

	Close() error
}

// ValidateKey rejects keys that cannot be stored safely by every backend.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) != key {
		return ErrInvalidKey
	}
	if strings.ContainsAny(key, `/\:`) || key == "." || key == ".." {
		return ErrInvalidKey
	}
	return nil
}
