package storage

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"notifwhitelist/internal/app/infrastructure/config"
	"notifwhitelist/internal/app/ports"
	"os"
	"path/filepath"
	"testing"
)

type record struct {
	List  []string `json:"list"`
	Flag  bool     `json:"flag"`
	Bytes []byte   `json:"bytes"`
}

func backends(t *testing.T) map[string]ports.DataStorePort {
	t.Helper()
	dir := t.TempDir()

	fileStore, err := New(config.Data{Backend: config.BackendFile, Path: filepath.Join(dir, "files")})
	require.NoError(t, err)
	sqliteStore, err := New(config.Data{Backend: config.BackendSQLite, Path: filepath.Join(dir, "data.db")})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = fileStore.Close()
		_ = sqliteStore.Close()
	})

	return map[string]ports.DataStorePort{
		config.BackendFile:   fileStore,
		config.BackendSQLite: sqliteStore,
	}
}

func TestStore_LoadMissing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var out record
			found, err := s.Load("NotificationWhitelist", "settings", &out)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestStore_SaveLoad(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			in := record{List: []string{"1", "2"}, Flag: true, Bytes: []byte{0, 1, 255}}
			require.NoError(t, s.Save("NotificationWhitelist", "settings", in))
			require.NoError(t, s.Save("NotificationWhitelist", "currentVersion", "1.2.0"))

			var out record
			found, err := s.Load("NotificationWhitelist", "settings", &out)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, in, out)

			var version string
			found, err = s.Load("NotificationWhitelist", "currentVersion", &version)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "1.2.0", version)
		})
	}
}

func TestStore_LastWriteWins(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save("ns", "k", record{List: []string{"a"}}))
			require.NoError(t, s.Save("ns", "k", record{List: []string{"b"}}))

			var out record
			_, err := s.Load("ns", "k", &out)
			require.NoError(t, err)
			assert.Equal(t, []string{"b"}, out.List)
		})
	}
}

func TestStore_CorruptValueKeepsDecodedFields(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save("ns", "k", map[string]any{
				"list":  []string{"a", "b"},
				"flag":  "yes",
				"bytes": "AQI=",
			}))

			var out record
			found, err := s.Load("ns", "k", &out)
			assert.True(t, found)
			assert.ErrorIs(t, err, ports.ErrCorruptValue)
			assert.Equal(t, []string{"a", "b"}, out.List)
			assert.Equal(t, []byte{1, 2}, out.Bytes)
			assert.False(t, out.Flag)
		})
	}
}

func TestStore_InvalidNamespace(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := s.Save("", "k", 1)
			assert.ErrorIs(t, err, ErrInvalidNamespace)
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	s1, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Save("NotificationWhitelist", "settings", record{Flag: true}))
	require.NoError(t, s1.Close())

	_, err = os.Stat(filepath.Join(dir, "NotificationWhitelist.config.json"))
	require.NoError(t, err)

	s2, err := NewFileStore(dir)
	require.NoError(t, err)

	var out record
	found, err := s2.Load("NotificationWhitelist", "settings", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, out.Flag)
}

func TestFileStore_RejectsTraversal(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	var out record
	_, err = s.Load("../etc", "k", &out)
	assert.ErrorIs(t, err, ErrInvalidNamespace)
}

func TestFileStore_CorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ns.config.json"), []byte("{not json"), 0o600))

	s, err := NewFileStore(dir)
	require.NoError(t, err)

	var out record
	_, err = s.Load("ns", "k", &out)
	assert.Error(t, err)
}
