package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentkeeper/internal/infrastructure/storage"
	"studentkeeper/internal/infrastructure/storage/storagetest"
)

func TestStorage(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		s, err := New(t.TempDir())
		require.NoError(t, err)
		return s
	})
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNew_EmptyDirectory(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestStorage_WritesKeyFile(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "students", []byte(`[]`)))

	data, err := os.ReadFile(filepath.Join(dir, "students.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStorage_RejectsPathKeys(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"../students", "a/b", "..", "", ".tmp-students"} {
		_, err := s.Get(ctx, key)
		assert.ErrorIs(t, err, storage.ErrInvalidKey, key)
		assert.ErrorIs(t, s.Set(ctx, key, []byte(`[]`)), storage.ErrInvalidKey, key)
		assert.ErrorIs(t, s.Delete(ctx, key), storage.ErrInvalidKey, key)
	}
}

func TestStorage_ClearKeepsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	foreign := filepath.Join(dir, "README.txt")
	require.NoError(t, os.WriteFile(foreign, []byte("keep"), 0600))
	require.NoError(t, s.Set(context.Background(), "students", []byte(`[]`)))

	require.NoError(t, s.Clear(context.Background()))

	_, err = os.Stat(foreign)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "students.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
