package domain

import "slices"

// Outcome is the user-visible classification of a run. Structural failures
// (resolution, version conflict) never reach a Report; they abort the run
// before dispatch.
type Outcome string

const (
	// OutcomeClean means nothing was dirty; every artifact came from cache.
	OutcomeClean Outcome = "clean"
	// OutcomeBuilt means every dispatched job succeeded.
	OutcomeBuilt Outcome = "built"
	// OutcomePartial means some jobs failed while others produced artifacts.
	OutcomePartial Outcome = "built-with-errors"
)

// JobReport summarizes one job for the aggregate compile report.
type JobReport struct {
	JobID       string
	Language    Language
	Version     string
	Files       []string
	Failed      bool
	Diagnostics []Diagnostic
	Err         error
}

// Report is the aggregate result of one run: per-job success or failure plus
// all diagnostics, independent across jobs.
type Report struct {
	Outcome Outcome
	Jobs    []JobReport

	// Cached holds the files whose artifacts were reused, sorted.
	Cached []string
}

// FailedFiles returns the files of failed jobs, sorted.
func (r *Report) FailedFiles() []string {
	var files []string
	for _, j := range r.Jobs {
		if j.Failed {
			files = append(files, j.Files...)
		}
	}
	slices.Sort(files)
	return files
}

// Diagnostics returns every diagnostic across all jobs, in job order.
func (r *Report) Diagnostics() []Diagnostic {
	var out []Diagnostic
	for _, j := range r.Jobs {
		out = append(out, j.Diagnostics...)
	}
	return out
}
