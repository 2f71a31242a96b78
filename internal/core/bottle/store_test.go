package bottle

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csabika98/Mythic/internal/core/logger"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "bottles.yaml"), logger.Nop())
}

func TestStore_EmptyWhenAbsent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	bottles, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bottles)

	_, ok, err := s.Get(ctx, "Default")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Check(ctx))
}

func TestStore_PutGetList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Bottle{Name: "Games", Path: "/b/Games"}))
	require.NoError(t, s.Put(ctx, Bottle{
		Name:     "Default",
		Path:     "/b/Default",
		Settings: Settings{Esync: true},
		Busy:     true,
	}))

	got, ok, err := s.Get(ctx, "Default")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Busy)
	assert.True(t, got.Settings.Esync)

	bottles, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, bottles, 2)
	assert.Equal(t, "Default", bottles[0].Name, "list is sorted by name")
	assert.Equal(t, "Games", bottles[1].Name)
}

func TestStore_PutOverwritesEntry(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Bottle{Name: "Default", Busy: true}))
	require.NoError(t, s.Put(ctx, Bottle{Name: "Default", Busy: false, Settings: Settings{Retina: true}}))

	got, ok, err := s.Get(ctx, "Default")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, got.Busy)
	assert.True(t, got.Settings.Retina)

	bottles, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, bottles, 1)
}

func TestStore_Defaults(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	defaults, err := s.Defaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, Settings{}, defaults)

	want := Settings{DXVK: true, Esync: true}
	require.NoError(t, s.SetDefaults(ctx, want))

	defaults, err = s.Defaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, defaults)

	// Defaults and the bottle map live in the same snapshot without
	// clobbering each other.
	require.NoError(t, s.Put(ctx, Bottle{Name: "Default"}))
	defaults, err = s.Defaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, defaults)
}

func TestStore_CorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bottles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0o644))

	s := NewStore(path, logger.Nop())
	ctx := context.Background()

	// Reads degrade to an empty view.
	bottles, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bottles)

	// But the corruption stays distinguishable from an absent snapshot.
	assert.ErrorIs(t, s.Check(ctx), ErrStoreCorrupt)

	// And writes refuse to clobber it.
	assert.ErrorIs(t, s.Put(ctx, Bottle{Name: "Default"}), ErrStoreCorrupt)
	assert.ErrorIs(t, s.SetDefaults(ctx, Settings{}), ErrStoreCorrupt)
}

func TestStore_ConcurrentPuts(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	names := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			assert.NoError(t, s.Put(ctx, Bottle{Name: name, Path: "/b/" + name}))
		}(name)
	}
	wg.Wait()

	bottles, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, bottles, len(names))
}

func TestStore_VersionedSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bottles.yaml")
	s := NewStore(path, logger.Nop())

	require.NoError(t, s.Put(context.Background(), Bottle{Name: "Default"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version: 1")
}
