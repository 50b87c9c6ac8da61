// Package store implements the durable compilation cache as a flat JSON
// file guarded by an advisory file lock.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.trai.ch/zerr"

	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

// formatVersion marks the cache file layout. A file carrying any other
// marker is treated as corrupted, which callers degrade to an empty cache.
const formatVersion = "solbuild-cache-1"

var _ ports.CacheStore = (*Store)(nil)

type cacheFile struct {
	Format  string                       `json:"format"`
	Entries map[string]domain.CacheEntry `json:"entries"`
}

// Store reads and writes the cache file. Load takes the lock, Persist
// releases it, so the load-then-persist window of one run is exclusive
// against other runs on the same cache path.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	path = filepath.Clean(path)
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Load acquires the advisory lock and reads all entries. A missing file
// yields an empty map; an unreadable or mismatched one yields
// domain.ErrCacheCorrupted with the lock still held, since the caller
// proceeds with an empty cache and persists over the bad file.
func (s *Store) Load() (map[string]domain.CacheEntry, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return nil, zerr.Wrap(err, "failed to create cache directory")
	}
	if err := s.lock.Lock(); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheLocked, err.Error()), "path", s.path)
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]domain.CacheEntry), nil
		}
		s.unlock()
		return nil, zerr.Wrap(err, "failed to read cache file")
	}
	if len(data) == 0 {
		return make(map[string]domain.CacheEntry), nil
	}

	var file cacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheCorrupted, err.Error()), "path", s.path)
	}
	if file.Format != formatVersion {
		return nil, zerr.With(zerr.With(domain.ErrCacheCorrupted, "format", file.Format), "path", s.path)
	}
	if file.Entries == nil {
		file.Entries = make(map[string]domain.CacheEntry)
	}
	return file.Entries, nil
}

// Persist atomically replaces the cache file and releases the lock. The
// write goes to a temp file in the same directory followed by a rename, so
// a crash mid-write leaves the previous file intact.
func (s *Store) Persist(entries map[string]domain.CacheEntry) error {
	defer s.unlock()

	data, err := json.MarshalIndent(cacheFile{
		Format:  formatVersion,
		Entries: entries,
	}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache file")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp cache file")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to write temp cache file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to close temp cache file")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to replace cache file")
	}
	return nil
}

func (s *Store) unlock() {
	_ = s.lock.Unlock()
}
