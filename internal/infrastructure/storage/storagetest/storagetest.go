// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentkeeper/internal/infrastructure/storage"
)

// Factory opens a fresh, empty storage for one subtest.
type Factory func(t *testing.T) storage.Storage

// Run exercises the storage.Storage contract against the backend built by newStorage.
func Run(t *testing.T, newStorage Factory) {
	t.Helper()

	tests := []struct {
		name string
		run  func(t *testing.T, s storage.Storage)
	}{
		{name: "missing key", run: testMissingKey},
		{name: "set then get", run: testSetGet},
		{name: "set overwrites", run: testOverwrite},
		{name: "delete", run: testDelete},
		{name: "delete missing key", run: testDeleteMissing},
		{name: "clear", run: testClear},
		{name: "returned value is a copy", run: testCopy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStorage(t)
			t.Cleanup(func() { _ = s.Close() })
			tt.run(t, s)
		})
	}
}

func testMissingKey(t *testing.T, s storage.Storage) {
	_, err := s.Get(context.Background(), "students")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func testSetGet(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	payload := []byte(`[{"ID":"1","firstName":"Ana"}]`)

	require.NoError(t, s.Set(ctx, "students", payload))

	got, err := s.Get(ctx, "students")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func testOverwrite(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "students", []byte(`[1]`)))
	require.NoError(t, s.Set(ctx, "students", []byte(`[1,2]`)))

	got, err := s.Get(ctx, "students")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), got)
}

func testDelete(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "students", []byte(`[]`)))
	require.NoError(t, s.Set(ctx, "settings", []byte(`{}`)))
	require.NoError(t, s.Delete(ctx, "students"))

	_, err := s.Get(ctx, "students")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	got, err := s.Get(ctx, "settings")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), got)
}

func testDeleteMissing(t *testing.T, s storage.Storage) {
	assert.NoError(t, s.Delete(context.Background(), "students"))
}

func testClear(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "students", []byte(`[]`)))
	require.NoError(t, s.Set(ctx, "settings", []byte(`{}`)))
	require.NoError(t, s.Clear(ctx))

	for _, key := range []string{"students", "settings"} {
		_, err := s.Get(ctx, key)
		assert.ErrorIs(t, err, storage.ErrKeyNotFound, key)
	}

	// the storage stays usable after a clear
	require.NoError(t, s.Set(ctx, "students", []byte(`[]`)))
	got, err := s.Get(ctx, "students")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func testCopy(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	payload := []byte(`[]`)

	require.NoError(t, s.Set(ctx, "students", payload))
	payload[0] = '{'

	got, err := s.Get(ctx, "students")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	got[0] = '{'
	again, err := s.Get(ctx, "students")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), again)
}
