// Package sealed encrypts values at rest on top of any storage backend.
//
// A sealed value is laid out as
//
//	magic "SKv1" | salt (16) | nonce (12) | AES-256-GCM ciphertext
//
// Every Set draws a fresh random salt, and the encryption key is derived
// from the passphrase with argon2id and that salt. The storage key is bound
// as additional data, so a value copied under another key does not open.
package sealed

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/argon2"

	"studentkeeper/internal/infrastructure/storage"
)

const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32 // AES-256

	saltLen = 16

	maxCachedKeys = 16
)

var magic = []byte("SKv1")

var (
	ErrEmptyPassphrase = errors.New("sealed storage: empty passphrase")
	ErrNotSealed       = errors.New("sealed storage: value is not sealed")
	ErrDecrypt         = errors.New("sealed storage: cannot open value (wrong passphrase or tampered data)")
)

type Storage struct {
	inner      storage.Storage
	passphrase []byte

	mu   sync.Mutex
	keys map[string][]byte // derived keys by salt
}

// New wraps inner so every value is sealed with a key derived from passphrase.
func New(inner storage.Storage, passphrase string) (*Storage, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	return &Storage{
		inner:      inner,
		passphrase: []byte(passphrase),
		keys:       make(map[string][]byte),
	}, nil
}

func (s *Storage) deriveKey(salt []byte) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key, ok := s.keys[string(salt)]; ok {
		return key
	}
	key := argon2.IDKey(s.passphrase, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	if len(s.keys) >= maxCachedKeys {
		clear(s.keys)
	}
	s.keys[string(salt)] = key
	return key
}

func newSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("sealed storage: generate salt: %w", err)
	}
	return salt, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("sealed storage: create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("sealed storage: create GCM: %w", err)
	}
	return gcm, nil
}

func (s *Storage) seal(key string, plaintext []byte) ([]byte, error) {
	salt, err := newSalt()
	if err != nil {
		return nil, err
	}
	gcm, err := newGCM(s.deriveKey(salt))
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("sealed storage: generate nonce: %w", err)
	}

	out := make([]byte, 0, len(magic)+saltLen+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, magic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, []byte(key)), nil
}

func (s *Storage) open(key string, sealed []byte) ([]byte, error) {
	if !bytes.HasPrefix(sealed, magic) {
		return nil, ErrNotSealed
	}
	rest := sealed[len(magic):]
	if len(rest) < saltLen {
		return nil, ErrNotSealed
	}
	salt, rest := rest[:saltLen], rest[saltLen:]

	gcm, err := newGCM(s.deriveKey(salt))
	if err != nil {
		return nil, err
	}
	if len(rest) < gcm.NonceSize() {
		return nil, ErrNotSealed
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, []byte(key))
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.open(key, value)
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	sealedValue, err := s.seal(key, value)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, sealedValue)
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *Storage) Clear(ctx context.Context) error {
	return s.inner.Clear(ctx)
}

func (s *Storage) Close() error {
	return s.inner.Close()
}
