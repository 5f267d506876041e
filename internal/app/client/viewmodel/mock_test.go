package viewmodel

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studentkeeper/internal/domain/student"
)

// MockStore is a mock implementation of StudentStore for testing
type MockStore struct {
	mock.Mock
}

func (m *MockStore) List(ctx context.Context) ([]student.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]student.Student), args.Error(1)
}

func (m *MockStore) Add(ctx context.Context, in student.Input) (student.Student, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(student.Student), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
