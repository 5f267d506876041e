package student

import (
	"errors"
	"fmt"
	"strings"
)

var ErrValidation = errors.New("all fields required")

// ValidationError reports the fields that failed the required-fields rule.
type ValidationError struct {
	Missing []Field
}

func (e *ValidationError) Error() string {
	if len(e.Missing) == 0 {
		return ErrValidation.Error()
	}
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("%s: missing %s", ErrValidation, strings.Join(names, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StorageError wraps a failure to read, decode, encode or write the collection.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("student storage: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err carries a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
