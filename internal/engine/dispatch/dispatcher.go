// Package dispatch partitions dirty files into compilation jobs and runs
// them on a bounded worker pool. Jobs are independent: one failing never
// stops the others, and results land in deterministic partition order no
// matter which worker finishes first.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"

	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

// maxAttempts bounds invocation retries. Only executor errors are retried;
// compiler diagnostics are final on the first attempt.
const maxAttempts = 3

// Partition groups the dirty files by (language, compiler version, settings
// fingerprint) and assembles one job per group. Each job carries the sources
// of its dirty files' full import closure, since a compiler needs callee
// sources even when those are clean. Jobs come back sorted by ID.
func Partition(
	g *domain.DependencyGraph,
	dirty map[domain.InternedString]struct{},
	versions map[domain.InternedString]*semver.Version,
	settings domain.Settings,
) []*domain.CompilationJob {
	groups := make(map[string]*domain.CompilationJob)
	for path := range dirty {
		i, ok := g.Lookup(path)
		if !ok {
			continue
		}
		f := g.Node(i)
		version := versions[path]
		key := fmt.Sprintf("%s/%s/%s", f.Language, version, settings.Fingerprint())
		job, ok := groups[key]
		if !ok {
			job = &domain.CompilationJob{
				Language: f.Language,
				Version:  version,
				Settings: settings,
			}
			groups[key] = job
		}
		job.DirtyFiles = append(job.DirtyFiles, path.String())
	}

	jobs := make([]*domain.CompilationJob, 0, len(groups))
	for _, job := range groups {
		slices.Sort(job.DirtyFiles)

		seed := make([]domain.InternedString, len(job.DirtyFiles))
		for i, p := range job.DirtyFiles {
			seed[i] = domain.NewInternedString(p)
		}
		job.Sources = make(map[string]string)
		for _, path := range g.ImportClosure(seed) {
			if i, ok := g.Lookup(path); ok {
				job.Sources[path.String()] = g.Node(i).Content
			}
		}
		jobs = append(jobs, job)
	}
	slices.SortFunc(jobs, func(a, b *domain.CompilationJob) int {
		return strings.Compare(a.ID(), b.ID())
	})
	return jobs
}

// Dispatcher fans jobs out to per-language executors.
type Dispatcher struct {
	executors map[domain.Language]ports.CompilerExecutor
	telemetry ports.Telemetry
	log       ports.Logger
	limit     int
}

func NewDispatcher(
	executors []ports.CompilerExecutor,
	telemetry ports.Telemetry,
	log ports.Logger,
	limit int,
) *Dispatcher {
	byLang := make(map[domain.Language]ports.CompilerExecutor, len(executors))
	for _, e := range executors {
		byLang[e.Language()] = e
	}
	if limit < 1 {
		limit = 1
	}
	return &Dispatcher{
		executors: byLang,
		telemetry: telemetry,
		log:       log,
		limit:     limit,
	}
}

// Dispatch runs all jobs on at most limit workers and returns one result per
// job, index-aligned with the input. Job failures are captured in the
// results, not returned: a failed job must not cancel its siblings.
func (d *Dispatcher) Dispatch(ctx context.Context, jobs []*domain.CompilationJob) []domain.JobResult {
	results := make([]domain.JobResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(d.limit)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = d.run(ctx, job)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (d *Dispatcher) run(ctx context.Context, job *domain.CompilationJob) domain.JobResult {
	result := domain.JobResult{Job: job}

	exec, ok := d.executors[job.Language]
	if !ok {
		result.Err = domain.ErrNoExecutor
		return result
	}

	ctx, vertex := d.telemetry.Record(ctx, job.ID())
	defer func() { vertex.Done(result.Err) }()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		out, err := exec.Compile(ctx, job)
		if err == nil {
			result.Output = out
			return result
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if attempt < maxAttempts {
			d.log.Warn(fmt.Sprintf("job %s attempt %d failed, retrying: %v", job.ID(), attempt, err))
		}
	}

	result.Err = errors.Join(domain.ErrCompilerInvocation, lastErr)
	return result
}
