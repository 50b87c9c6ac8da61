package ports

import "github.com/foundry-rs/compilers/internal/core/domain"

// CacheStore is the durable backing of the compilation cache.
//
// A store is owned by a single compile run at a time: Load acquires an
// advisory lock that Persist releases, guarding the load-then-persist window
// against concurrent writers from the same process. Concurrent external
// processes targeting the same file are an environmental assumption, not a
// correctness guarantee.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Load reads all entries. A missing store yields an empty map. An
	// unparsable store returns domain.ErrCacheCorrupted; callers recover by
	// treating the cache as empty.
	Load() (map[string]domain.CacheEntry, error)

	// Persist atomically replaces the durable store with the given entries.
	// A crash mid-write never leaves a half-written file behind.
	Persist(entries map[string]domain.CacheEntry) error
}
