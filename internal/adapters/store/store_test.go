package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foundry-rs/compilers/internal/adapters/store"
	"github.com/foundry-rs/compilers/internal/core/domain"
)

func cachePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cache", "solbuild-cache.json")
}

func TestLoadMissingFileYieldsEmpty(t *testing.T) {
	s := store.NewStore(cachePath(t))
	entries, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.NoError(t, s.Persist(entries))
}

func TestPersistThenLoadRoundTrip(t *testing.T) {
	path := cachePath(t)

	first := store.NewStore(path)
	entries, err := first.Load()
	require.NoError(t, err)
	entries["a.sol"] = domain.CacheEntry{
		Path:                "a.sol",
		Language:            domain.LangSolidity,
		ContentHash:         "ha",
		SettingsFingerprint: "fp",
		CompilerVersion:     "0.8.20",
		Retained:            []domain.OutputCategory{domain.OutputABI},
		Artifacts:           map[string]string{"A": "out/A.json"},
	}
	require.NoError(t, first.Persist(entries))

	second := store.NewStore(path)
	loaded, err := second.Load()
	require.NoError(t, err)
	require.NoError(t, second.Persist(loaded))
	require.Contains(t, loaded, "a.sol")
	assert.Equal(t, "ha", loaded["a.sol"].ContentHash)
	assert.Equal(t, "0.8.20", loaded["a.sol"].CompilerVersion)
}

func TestLoadCorruptedFile(t *testing.T) {
	path := cachePath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := store.NewStore(path)
	_, err := s.Load()
	require.ErrorIs(t, err, domain.ErrCacheCorrupted)

	// A corrupted load keeps the lock; persisting over the bad file works.
	require.NoError(t, s.Persist(map[string]domain.CacheEntry{}))
	reloaded, err := store.NewStore(path).Load()
	require.NoError(t, err)
	assert.Empty(t, reloaded)
}

func TestLoadUnknownFormatMarker(t *testing.T) {
	path := cachePath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`{"format":"solbuild-cache-99","entries":{}}`), 0o644))

	s := store.NewStore(path)
	_, err := s.Load()
	require.ErrorIs(t, err, domain.ErrCacheCorrupted)
	require.NoError(t, s.Persist(map[string]domain.CacheEntry{}))
}

func TestPersistLeavesNoTempFiles(t *testing.T) {
	path := cachePath(t)
	s := store.NewStore(path)
	entries, err := s.Load()
	require.NoError(t, err)
	require.NoError(t, s.Persist(entries))

	dirEntries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	names := make([]string, 0, len(dirEntries))
	for _, e := range dirEntries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"solbuild-cache.json", "solbuild-cache.json.lock"}, names)
}
