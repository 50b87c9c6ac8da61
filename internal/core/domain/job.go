package domain

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// CompilationJob is one compiler invocation: all dirty files sharing a
// (language, compiler version, settings fingerprint) partition, plus the
// sources of their transitive imports, which the compiler needs as context
// even when they are clean themselves.
type CompilationJob struct {
	Language Language
	Version  *semver.Version
	Settings Settings

	// DirtyFiles holds the canonical paths whose artifacts this job is
	// responsible for producing, sorted.
	DirtyFiles []string

	// Sources maps every path in the job's import closure to its content.
	Sources map[string]string
}

// ID returns the job's stable partition key.
func (j *CompilationJob) ID() string {
	return fmt.Sprintf("%s/%s/%s", j.Language, j.Version, j.Settings.Fingerprint())
}

// Severity classifies a compiler diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one message reported by a compiler toolchain. Diagnostics are
// always surfaced, never swallowed; an error-severity diagnostic fails its
// job but is not retried.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	File     string   `json:"file,omitempty"`
	Message  string   `json:"message"`
}

// CompileOutput is the structured response of a compiler executor for one
// job. An executor returns it even when the toolchain reported errors; a Go
// error from the executor means the invocation itself failed.
type CompileOutput struct {
	Diagnostics []Diagnostic

	// Contracts maps source path to contract name to artifact.
	Contracts map[string]map[string]ContractArtifact

	// CompilerVersion is the version string the toolchain reported about
	// itself.
	CompilerVersion string
}

// JobResult pairs a job with its outcome. Exactly one of Output and Err is
// meaningful: Err records an invocation failure after retries were
// exhausted.
type JobResult struct {
	Job    *CompilationJob
	Output *CompileOutput
	Err    error
}

// Failed reports whether the job produced no usable artifacts, either
// because the invocation failed or because the toolchain reported an
// error-severity diagnostic.
func (r *JobResult) Failed() bool {
	if r.Err != nil {
		return true
	}
	for _, d := range r.Output.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
