// Package app implements the application layer for solbuild: one Run is the
// full pipeline from source discovery to persisted cache.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"

	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
	"github.com/foundry-rs/compilers/internal/engine/cache"
	"github.com/foundry-rs/compilers/internal/engine/dispatch"
	"github.com/foundry-rs/compilers/internal/engine/resolver"
	"github.com/foundry-rs/compilers/internal/engine/version"
)

// App wires the engine stages together.
type App struct {
	cfg        *domain.ProjectConfig
	finder     ports.SourceFinder
	resolver   *resolver.Resolver
	matcher    *version.Matcher
	cache      *cache.Cache
	dispatcher *dispatch.Dispatcher
	merger     *dispatch.Merger
	sink       ports.ArtifactSink
	log        ports.Logger
}

// New creates a new App instance.
func New(
	cfg *domain.ProjectConfig,
	finder ports.SourceFinder,
	res *resolver.Resolver,
	matcher *version.Matcher,
	c *cache.Cache,
	dispatcher *dispatch.Dispatcher,
	merger *dispatch.Merger,
	sink ports.ArtifactSink,
	log ports.Logger,
) *App {
	return &App{
		cfg:        cfg,
		finder:     finder,
		resolver:   res,
		matcher:    matcher,
		cache:      c,
		dispatcher: dispatcher,
		merger:     merger,
		sink:       sink,
		log:        log,
	}
}

// Run executes one compilation: discover, resolve, select versions, compute
// the dirty set, dispatch, merge, write artifacts and persist the cache.
// Structural failures (resolution, version conflicts) return an error; job
// failures are captured in the report with everything else still compiling.
func (a *App) Run(ctx context.Context) (*domain.Report, error) {
	entries, err := a.finder.FindSources(filepath.Join(a.cfg.Root, a.cfg.SourceDir))
	if err != nil {
		return nil, err
	}

	g, err := a.resolver.Resolve(a.cfg, entries)
	if err != nil {
		return nil, err
	}

	versions, err := a.selectVersions(ctx, g)
	if err != nil {
		return nil, err
	}

	if err := a.cache.Load(); err != nil {
		return nil, err
	}

	versionStrings := make(map[domain.InternedString]string, len(versions))
	for path, v := range versions {
		versionStrings[path] = v.String()
	}
	dirty := a.cache.DirtySet(g, a.cfg.Settings, versionStrings)
	jobs := dispatch.Partition(g, dirty, versions, a.cfg.Settings)

	a.log.Info(fmt.Sprintf("%d sources, %d dirty, %d jobs", g.Len(), len(dirty), len(jobs)))

	results := a.dispatcher.Dispatch(ctx, jobs)

	reused, cached := a.reusedEntries(g, dirty)
	set, err := a.merger.Merge(a.cfg.Settings, results, reused)
	if err != nil {
		return nil, err
	}

	refs, err := a.sink.Write(ctx, set)
	if err != nil {
		return nil, err
	}

	for i := range results {
		if !results[i].Failed() {
			a.cache.Commit(g, results[i].Job, refs)
		}
	}
	a.cache.Prune(g)
	if err := a.cache.Persist(); err != nil {
		return nil, err
	}

	return buildReport(results, cached), nil
}

// Clean removes the artifact directory and the cache file.
func (a *App) Clean() error {
	artifacts := a.cfg.ArtifactsDir
	if !filepath.IsAbs(artifacts) {
		artifacts = filepath.Join(a.cfg.Root, artifacts)
	}
	if err := os.RemoveAll(artifacts); err != nil {
		return zerr.Wrap(err, "failed to remove artifacts")
	}
	if err := os.Remove(a.cfg.CachePath); err != nil && !os.IsNotExist(err) {
		return zerr.Wrap(err, "failed to remove cache")
	}
	a.log.Info("removed artifacts and cache")
	return nil
}

// selectVersions picks one compiler version per cluster and maps every
// member file to it. A conflict in any cluster aborts the run before any
// compiler is dispatched.
func (a *App) selectVersions(
	ctx context.Context,
	g *domain.DependencyGraph,
) (map[domain.InternedString]*semver.Version, error) {
	versions := make(map[domain.InternedString]*semver.Version, g.Len())
	for _, cluster := range g.Clusters() {
		v, err := a.matcher.Select(ctx, g, cluster)
		if err != nil {
			return nil, err
		}
		for _, path := range cluster.Files {
			versions[path] = v
		}
	}
	return versions, nil
}

// reusedEntries returns the cache entries of the clean files plus their
// sorted paths for the report.
func (a *App) reusedEntries(
	g *domain.DependencyGraph,
	dirty map[domain.InternedString]struct{},
) ([]domain.CacheEntry, []string) {
	var entries []domain.CacheEntry
	var cached []string
	for f := range g.Files() {
		if _, isDirty := dirty[f.Path]; isDirty {
			continue
		}
		if entry, ok := a.cache.Entry(f.Path.String()); ok {
			entries = append(entries, entry)
			cached = append(cached, f.Path.String())
		}
	}
	slices.Sort(cached)
	return entries, cached
}

func buildReport(results []domain.JobResult, cached []string) *domain.Report {
	report := &domain.Report{
		Outcome: domain.OutcomeClean,
		Cached:  cached,
	}
	if len(results) > 0 {
		report.Outcome = domain.OutcomeBuilt
	}

	for i := range results {
		res := &results[i]
		jr := domain.JobReport{
			JobID:    res.Job.ID(),
			Language: res.Job.Language,
			Version:  res.Job.Version.String(),
			Files:    res.Job.DirtyFiles,
			Failed:   res.Failed(),
			Err:      res.Err,
		}
		if res.Output != nil {
			jr.Diagnostics = res.Output.Diagnostics
		}
		if jr.Failed {
			report.Outcome = domain.OutcomePartial
		}
		report.Jobs = append(report.Jobs, jr)
	}
	return report
}
