package student

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"studentkeeper/internal/infrastructure/storage"
)

// DefaultKey is the storage key holding the serialized collection.
const DefaultKey = "students"

// ClearScope selects what Store.Clear erases.
type ClearScope string

const (
	// ClearCollection deletes only the collection key.
	ClearCollection ClearScope = "collection"
	// ClearNamespace wipes every key of the storage namespace, not just the
	// students. Anything else kept in the same namespace is lost.
	ClearNamespace ClearScope = "namespace"
)

// ParseClearScope validates a configured scope. An empty value means ClearCollection.
func ParseClearScope(v string) (ClearScope, error) {
	switch ClearScope(v) {
	case "", ClearCollection:
		return ClearCollection, nil
	case ClearNamespace:
		return ClearNamespace, nil
	}
	return "", fmt.Errorf("unknown clear scope %q", v)
}

// Store owns the student collection persisted as one JSON array under one key.
//
// Every mutation loads the whole collection, changes it in memory and writes
// it back. The cycle is serialized by a mutex, so goroutines sharing a Store
// do not lose updates. Separate Store instances or processes over the same
// storage are not coordinated: the last write wins.
type Store struct {
	kv    storage.Storage
	key   string
	scope ClearScope
	newID func() string
	log   *slog.Logger

	mu sync.Mutex
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithClearScope(scope ClearScope) Option {
	return func(s *Store) { s.scope = scope }
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func NewStore(kv storage.Storage, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		key:   DefaultKey,
		scope: ClearCollection,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = log.With("component", "student_store", "key", s.key)
	return s
}

// Key returns the storage key of the collection.
func (s *Store) Key() string {
	return s.key
}

// Scope returns what Clear erases.
func (s *Store) Scope() ClearScope {
	return s.scope
}

// List returns the collection in insertion order. A missing key yields an
// empty slice. A payload that is not a JSON array of students is an error.
func (s *Store) List(ctx context.Context) ([]Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// Add appends a new student with a fresh ID and persists the collection.
//
// Add does not validate in: the caller must have rejected blank fields.
func (s *Store) Add(ctx context.Context, in Input) (Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load(ctx)
	if err != nil {
		return Student{}, err
	}

	st := Student{
		ID:        s.newID(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Course:    in.Course,
		Username:  in.Username,
		Password:  in.Password,
	}
	students = append(students, st)

	if err := s.save(ctx, students); err != nil {
		return Student{}, err
	}

	s.log.Info("student added", "id", st.ID, "total", len(students))
	return st, nil
}

// Delete removes the student with the given ID. An unknown ID is a no-op and
// nothing is written.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := students[:0]
	for _, st := range students {
		if st.ID != id {
			kept = append(kept, st)
		}
	}
	if len(kept) == len(students) {
		s.log.Debug("delete of unknown student ignored", "id", id)
		return nil
	}

	if err := s.save(ctx, kept); err != nil {
		return err
	}

	s.log.Info("student deleted", "id", id, "total", len(kept))
	return nil
}

// Clear resets the collection to empty. With ClearNamespace it erases the
// whole storage namespace.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch s.scope {
	case ClearNamespace:
		err = s.kv.Clear(ctx)
	default:
		err = s.kv.Delete(ctx, s.key)
	}
	if err != nil {
		s.log.Error("failed to clear students", "scope", s.scope, "error", err)
		return &StorageError{Op: "clear", Key: s.key, Err: err}
	}

	s.log.Warn("students cleared", "scope", s.scope)
	return nil
}

func (s *Store) load(ctx context.Context) ([]Student, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []Student{}, nil
	}
	if err != nil {
		s.log.Error("failed to read students", "error", err)
		return nil, &StorageError{Op: "read", Key: s.key, Err: err}
	}

	var stored []storedStudent
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.log.Error("failed to decode students", "error", err)
		return nil, &StorageError{Op: "decode", Key: s.key, Err: err}
	}
	students := make([]Student, len(stored))
	for i, st := range stored {
		students[i] = st.Student
	}
	return students, nil
}

// storedStudent absorbs the lowercase "id" display index that older writers
// left on rows after a delete. Without it the case-insensitive decoder would
// let "id" overwrite ID.
type storedStudent struct {
	Student
	DisplayIndex json.RawMessage `json:"id,omitempty"`
}

func (s *Store) save(ctx context.Context, students []Student) error {
	raw, err := json.Marshal(students)
	if err != nil {
		return &StorageError{Op: "encode", Key: s.key, Err: err}
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		s.log.Error("failed to write students", "error", err)
		return &StorageError{Op: "write", Key: s.key, Err: err}
	}
	return nil
}
