// Package cache decides which source files must recompile and records the
// results of the files that did. Reuse requires an exact match on content
// hash, settings fingerprint and compiler version plus artifacts that still
// exist on disk; a dirty file drags every transitive importer with it.
package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

type Cache struct {
	store    ports.CacheStore
	verifier ports.Verifier
	log      ports.Logger

	entries map[string]domain.CacheEntry
}

func New(store ports.CacheStore, verifier ports.Verifier, log ports.Logger) *Cache {
	return &Cache{
		store:    store,
		verifier: verifier,
		log:      log,
		entries:  make(map[string]domain.CacheEntry),
	}
}

// Load reads the durable entries. A corrupted store is not fatal: the run
// degrades to a full rebuild on an empty cache and the eventual Persist
// replaces the bad file.
func (c *Cache) Load() error {
	entries, err := c.store.Load()
	switch {
	case errors.Is(err, domain.ErrCacheCorrupted):
		c.log.Warn(fmt.Sprintf("compilation cache unreadable, rebuilding everything: %v", err))
		c.entries = make(map[string]domain.CacheEntry)
		return nil
	case err != nil:
		return err
	}
	if entries == nil {
		entries = make(map[string]domain.CacheEntry)
	}
	c.entries = entries
	return nil
}

// Entry returns the recorded entry for a canonical path.
func (c *Cache) Entry(path string) (domain.CacheEntry, bool) {
	e, ok := c.entries[path]
	return e, ok
}

// DirtySet computes the set of files that must recompile: every file whose
// own state invalidates its entry, expanded with everything that transitively
// imports one of those files. versions maps each file to the compiler version
// selected for its cluster.
func (c *Cache) DirtySet(
	g *domain.DependencyGraph,
	settings domain.Settings,
	versions map[domain.InternedString]string,
) map[domain.InternedString]struct{} {
	fingerprint := settings.Fingerprint()
	requested := settings.NormalizedOutput()

	seed := make(map[domain.InternedString]struct{})
	for f := range g.Files() {
		if c.isDirty(f, fingerprint, requested, versions[f.Path]) {
			seed[f.Path] = struct{}{}
		}
	}
	return g.ImporterClosure(seed)
}

func (c *Cache) isDirty(
	f *domain.SourceFile,
	fingerprint string,
	requested []domain.OutputCategory,
	version string,
) bool {
	entry, ok := c.entries[f.Path.String()]
	if !ok {
		return true
	}
	if entry.ContentHash != f.ContentHash {
		return true
	}
	if entry.SettingsFingerprint != fingerprint {
		return true
	}
	if entry.CompilerVersion != version {
		return true
	}
	// Requesting a category the entry never produced forces a recompile;
	// requesting fewer reuses the entry as-is.
	if !entry.Retains(requested) {
		return true
	}
	paths := make([]string, 0, len(entry.Artifacts))
	for _, p := range entry.Artifacts {
		paths = append(paths, p)
	}
	return !c.verifier.VerifyArtifacts(paths)
}

// Commit records fresh entries for the dirty files a job compiled. refs maps
// each written artifact to its on-disk location; only artifacts of the job's
// own dirty files are recorded, context files belong to other entries.
func (c *Cache) Commit(
	g *domain.DependencyGraph,
	job *domain.CompilationJob,
	refs map[domain.ArtifactID]string,
) {
	bySource := make(map[string]map[string]string)
	for id, path := range refs {
		if bySource[id.Source] == nil {
			bySource[id.Source] = make(map[string]string)
		}
		bySource[id.Source][id.Contract] = path
	}

	retained := job.Settings.NormalizedOutput()
	fingerprint := job.Settings.Fingerprint()
	now := time.Now().UTC()

	for _, path := range job.DirtyFiles {
		i, ok := g.Lookup(domain.NewInternedString(path))
		if !ok {
			continue
		}
		f := g.Node(i)
		imports := make([]string, len(f.Imports))
		for j, imp := range f.Imports {
			imports[j] = imp.String()
		}
		c.entries[path] = domain.CacheEntry{
			Path:                path,
			Language:            f.Language,
			ContentHash:         f.ContentHash,
			Imports:             imports,
			SettingsFingerprint: fingerprint,
			CompilerVersion:     job.Version.String(),
			Retained:            retained,
			Artifacts:           bySource[path],
			Timestamp:           now,
		}
	}
}

// Prune drops entries for files no longer present in the graph so deleted
// sources do not accumulate in the store.
func (c *Cache) Prune(g *domain.DependencyGraph) {
	for path := range c.entries {
		if _, ok := g.Lookup(domain.NewInternedString(path)); !ok {
			delete(c.entries, path)
		}
	}
}

// Persist writes the in-memory entries back to the store.
func (c *Cache) Persist() error {
	return c.store.Persist(c.entries)
}
