// Package file stores every key as a JSON file inside one directory.
// The directory is the namespace: Clear removes the key files found in it.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"studentkeeper/internal/infrastructure/storage"
)

const (
	fileExt   = ".json"
	dirPerm   = 0700
	tmpPrefix = ".tmp-"
)

type Storage struct {
	dir string
}

// New opens (and creates if needed) the storage directory.
func New(dir string) (*Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("file storage: empty directory")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("file storage: create directory: %w", err)
	}
	return &Storage{dir: dir}, nil
}

func (s *Storage) path(key string) (string, error) {
	if err := storage.ValidateKey(key); err != nil {
		return "", err
	}
	// temp names are reserved for in-flight writes and skipped by Clear
	if strings.HasPrefix(key, tmpPrefix) {
		return "", storage.ErrInvalidKey
	}
	return filepath.Join(s.dir, key+fileExt), nil
}

func (s *Storage) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("file storage: read %s: %w", key, err)
	}
	return data, nil
}

// Set writes the value to a temp file and renames it over the key file,
// so readers see either the old or the new value.
func (s *Storage) Set(_ context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, tmpPrefix+key+"-*")
	if err != nil {
		return fmt.Errorf("file storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("file storage: write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("file storage: sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file storage: close %s: %w", key, err)
	}

	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("file storage: replace %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file storage: delete %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Clear(_ context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("file storage: list directory: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) || strings.HasPrefix(name, tmpPrefix) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("file storage: clear %s: %w", name, err)
		}
	}
	return nil
}

func (s *Storage) Close() error {
	return nil
}
