package viewmodel

import (
	"context"

	"studentkeeper/internal/domain/student"
)

// StudentStore is the part of student.Store the view models use.
type StudentStore interface {
	List(ctx context.Context) ([]student.Student, error)
	Add(ctx context.Context, in student.Input) (student.Student, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

var _ StudentStore = (*student.Store)(nil)
