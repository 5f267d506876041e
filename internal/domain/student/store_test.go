package student

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"studentkeeper/internal/infrastructure/storage"
	"studentkeeper/internal/infrastructure/storage/memory"
)

// MockStorage is a mock implementation of storage.Storage for failure paths
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStorage) Close() error {
	args := m.Called()
	return args.Error(0)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

var (
	ana = Input{FirstName: "Ana", LastName: "Cruz", Course: "BSIT", Username: "ana1", Password: "p1"}
	ben = Input{FirstName: "Ben", LastName: "Reyes", Course: "BSCS", Username: "ben2", Password: "p2"}
	cai = Input{FirstName: "Cai", LastName: "Lim", Course: "BSHM", Username: "cai3", Password: "p3"}
)

func TestStore_ListMissingKey(t *testing.T) {
	s := NewStore(memory.New(), slog.Default())

	students, err := s.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestStore_ListPayloads(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantLen   int
		wantIDs   []string
		wantError bool
	}{
		{name: "empty array", payload: `[]`, wantLen: 0},
		{name: "null", payload: `null`, wantLen: 0},
		{name: "one record", payload: `[{"ID":"x","firstName":"Ana","lastName":"Cruz","course":"BSIT","username":"ana1","password":"p1"}]`, wantLen: 1},
		{
			name: "rows with display index",
			payload: `[{"ID":"9b2f-uuid-a","firstName":"Ana","lastName":"Cruz","course":"BSIT","username":"ana1","password":"p1","id":"1"},` +
				`{"ID":"9b2f-uuid-b","firstName":"Ben","lastName":"Reyes","course":"BSCS","username":"ben2","password":"p2","id":2}]`,
			wantLen: 2,
			wantIDs: []string{"9b2f-uuid-a", "9b2f-uuid-b"},
		},
		{name: "object instead of array", payload: `{"ID":"x"}`, wantError: true},
		{name: "garbage", payload: `not json`, wantError: true},
		{name: "wrong field type", payload: `[{"ID":1}]`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := memory.New()
			require.NoError(t, kv.Set(context.Background(), DefaultKey, []byte(tt.payload)))
			s := NewStore(kv, slog.Default())

			students, err := s.List(context.Background())
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, IsStorageError(err))
				var se *StorageError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, "decode", se.Op)
				return
			}
			require.NoError(t, err)
			assert.Len(t, students, tt.wantLen)
			if tt.wantIDs != nil {
				ids := make([]string, len(students))
				for i, st := range students {
					ids[i] = st.ID
				}
				assert.Equal(t, tt.wantIDs, ids)
			}
		})
	}
}

func TestStore_DeleteRowWithDisplayIndex(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	payload := `[{"ID":"9b2f-uuid-a","firstName":"Ana","lastName":"Cruz","course":"BSIT","username":"ana1","password":"p1","id":"1"},` +
		`{"ID":"9b2f-uuid-b","firstName":"Ben","lastName":"Reyes","course":"BSCS","username":"ben2","password":"p2","id":"2"}]`
	require.NoError(t, kv.Set(ctx, DefaultKey, []byte(payload)))
	s := NewStore(kv, slog.Default())

	require.NoError(t, s.Delete(ctx, "9b2f-uuid-a"))

	students, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "9b2f-uuid-b", students[0].ID)

	raw, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"id"`, "the display index is not written back")
}

func TestStore_AddPreservesFields(t *testing.T) {
	ctx := context.Background()
	s := NewStore(memory.New(), slog.Default())

	before, err := s.List(ctx)
	require.NoError(t, err)

	added, err := s.Add(ctx, ana)
	require.NoError(t, err)

	after, err := s.List(ctx)
	require.NoError(t, err)

	require.Len(t, after, len(before)+1)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, added, after[len(after)-1])
	assert.Equal(t, ana.FirstName, added.FirstName)
	assert.Equal(t, ana.LastName, added.LastName)
	assert.Equal(t, ana.Course, added.Course)
	assert.Equal(t, ana.Username, added.Username)
	assert.Equal(t, ana.Password, added.Password)
}

func TestStore_AddAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := NewStore(memory.New(), slog.Default())

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		// duplicate names and usernames are allowed
		st, err := s.Add(ctx, ana)
		require.NoError(t, err)
		assert.False(t, seen[st.ID], "duplicate id %s", st.ID)
		seen[st.ID] = true
	}

	students, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 20)
}

func TestStore_PersistedShape(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := NewStore(kv, slog.Default(), WithIDGenerator(sequentialIDs()))

	_, err := s.Add(ctx, ana)
	require.NoError(t, err)

	raw, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"ID":"id-1","firstName":"Ana","lastName":"Cruz","course":"BSIT","username":"ana1","password":"p1"}]`,
		string(raw))
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	written := []Student{
		{ID: "b", FirstName: "Ben", LastName: "Reyes", Course: "BSCS", Username: "ben2", Password: "p2"},
		{ID: "a", FirstName: "Ana", LastName: "Cruz", Course: "free text", Username: "ana1", Password: "p1"},
		{ID: "c", FirstName: "Çai", LastName: "Lím", Course: "BSHM", Username: "cai3", Password: `p"3`},
	}

	s := NewStore(kv, slog.Default())
	require.NoError(t, s.save(ctx, written))

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, written, got)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewStore(memory.New(), slog.Default(), WithIDGenerator(sequentialIDs()))

	a, err := s.Add(ctx, ana)
	require.NoError(t, err)
	b, err := s.Add(ctx, ben)
	require.NoError(t, err)
	c, err := s.Add(ctx, cai)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, b.ID))

	students, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Student{a, c}, students)
}

func TestStore_DeleteUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	kv := new(MockStorage)
	payload := []byte(`[{"ID":"a","firstName":"Ana","lastName":"Cruz","course":"BSIT","username":"ana1","password":"p1"}]`)
	kv.On("Get", mock.Anything, DefaultKey).Return(payload, nil)

	s := NewStore(kv, slog.Default())

	require.NoError(t, s.Delete(ctx, "missing"))
	require.NoError(t, s.Delete(ctx, "missing"))

	kv.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestStore_DeleteOnEmptyCollection(t *testing.T) {
	s := NewStore(memory.New(), slog.Default())

	assert.NoError(t, s.Delete(context.Background(), "anything"))
}

func TestStore_ClearCollectionScope(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, "settings", []byte(`{}`)))
	s := NewStore(kv, slog.Default())

	_, err := s.Add(ctx, ana)
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx))

	students, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)

	_, err = kv.Get(ctx, "settings")
	assert.NoError(t, err, "collection scope must keep other keys")
}

func TestStore_ClearNamespaceScope(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, "settings", []byte(`{}`)))
	s := NewStore(kv, slog.Default(), WithClearScope(ClearNamespace))

	_, err := s.Add(ctx, ana)
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx))

	students, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)

	_, err = kv.Get(ctx, "settings")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestStore_StorageErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")

	t.Run("read fails", func(t *testing.T) {
		kv := new(MockStorage)
		kv.On("Get", mock.Anything, DefaultKey).Return(nil, boom)
		s := NewStore(kv, slog.Default())

		_, err := s.List(ctx)
		assert.ErrorIs(t, err, boom)
		assert.True(t, IsStorageError(err))

		_, err = s.Add(ctx, ana)
		assert.ErrorIs(t, err, boom)

		assert.ErrorIs(t, s.Delete(ctx, "a"), boom)
		kv.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("write fails", func(t *testing.T) {
		kv := new(MockStorage)
		kv.On("Get", mock.Anything, DefaultKey).Return(nil, storage.ErrKeyNotFound)
		kv.On("Set", mock.Anything, DefaultKey, mock.Anything).Return(boom)
		s := NewStore(kv, slog.Default())

		_, err := s.Add(ctx, ana)
		require.Error(t, err)
		var se *StorageError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "write", se.Op)
		assert.Equal(t, DefaultKey, se.Key)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("clear fails", func(t *testing.T) {
		kv := new(MockStorage)
		kv.On("Delete", mock.Anything, DefaultKey).Return(boom)
		s := NewStore(kv, slog.Default())

		err := s.Clear(ctx)
		assert.ErrorIs(t, err, boom)
		assert.True(t, IsStorageError(err))
	})
}

func TestStore_WithKey(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := NewStore(kv, slog.Default(), WithKey("roster"))

	_, err := s.Add(ctx, ana)
	require.NoError(t, err)

	_, err = kv.Get(ctx, "roster")
	assert.NoError(t, err)
	_, err = kv.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	assert.Equal(t, "roster", s.Key())
}

func TestStore_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	s := NewStore(memory.New(), slog.Default())

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Add(ctx, ana)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	students, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, students, n)
}

func TestStore_Scenario(t *testing.T) {
	ctx := context.Background()
	s := NewStore(memory.New(), slog.Default())

	first, err := s.Add(ctx, ana)
	require.NoError(t, err)

	students, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.NotEmpty(t, students[0].ID)
	assert.Equal(t, "Ana", students[0].FirstName)

	second, err := s.Add(ctx, ben)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, first.ID))
	students, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Student{second}, students)

	require.NoError(t, s.Clear(ctx))
	students, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestParseClearScope(t *testing.T) {
	tests := []struct {
		in      string
		want    ClearScope
		wantErr bool
	}{
		{in: "", want: ClearCollection},
		{in: "collection", want: ClearCollection},
		{in: "namespace", want: ClearNamespace},
		{in: "everything", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClearScope(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
