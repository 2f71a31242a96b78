package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	dir := t.TempDir()
	return NewManagerAt(filepath.Join(dir, "config.yaml"), filepath.Join(dir, "data"))
}

func TestManager_LoadMissing(t *testing.T) {
	m := testManager(t)

	_, err := m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
	assert.False(t, m.IsInitialized())
}

func TestManager_SaveLoadRoundtrip(t *testing.T) {
	m := testManager(t)

	saved := DefaultConfig()
	saved.Wine.Binary = "/opt/wine/bin/wine"
	saved.Bottles.Directory = "/tmp/Bottles"
	require.NoError(t, m.Save(saved))
	assert.True(t, m.IsInitialized())

	loaded, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "/opt/wine/bin/wine", loaded.Wine.Binary)
	assert.Equal(t, "/tmp/Bottles", loaded.Bottles.Directory)
	assert.Equal(t, "1", loaded.Version)
}

func TestManager_LoadAppliesDefaults(t *testing.T) {
	m := testManager(t)

	// A minimal hand-written config omitting most fields.
	require.NoError(t, os.MkdirAll(filepath.Dir(m.ConfigPath()), 0o755))
	require.NoError(t, os.WriteFile(m.ConfigPath(), []byte("wine:\n  binary: wine64\n"), 0o644))

	loaded, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "wine64", loaded.Wine.Binary)
	assert.Equal(t, "1", loaded.Version)
	assert.Equal(t, "info", loaded.Log.Level)
	assert.NotEmpty(t, loaded.Bottles.Directory)
}

func TestManager_LoadInvalidYaml(t *testing.T) {
	m := testManager(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(m.ConfigPath()), 0o755))
	require.NoError(t, os.WriteFile(m.ConfigPath(), []byte("{broken: ["), 0o644))

	_, err := m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestManager_StorePath(t *testing.T) {
	m := NewManagerAt("/etc/mythic/config.yaml", "/var/lib/mythic")
	assert.Equal(t, "/var/lib/mythic/bottles.yaml", m.StorePath())
}
