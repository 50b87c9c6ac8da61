package domain

import "go.trai.ch/zerr"

var (
	// ErrUnresolvedImport is returned when an import string cannot be mapped
	// to a file, neither directly nor through a remapping.
	ErrUnresolvedImport = zerr.New("unresolved import")

	// ErrUnknownLanguage is returned when a source file's extension does not
	// belong to any supported contract language.
	ErrUnknownLanguage = zerr.New("unknown source language")

	// ErrInvalidConstraint is returned when a version pragma cannot be parsed
	// as a semver requirement.
	ErrInvalidConstraint = zerr.New("invalid version constraint")

	// ErrVersionConflict is returned when the version constraints declared
	// within one import cluster have an empty intersection.
	ErrVersionConflict = zerr.New("no compiler version satisfies all constraints in cluster")

	// ErrCompilerInvocation is returned when the compiler executor could not
	// be started or communicated with, after retries were exhausted.
	ErrCompilerInvocation = zerr.New("compiler invocation failed")

	// ErrNoExecutor is returned when a job's language has no registered
	// compiler executor.
	ErrNoExecutor = zerr.New("no compiler executor for language")

	// ErrCompilationFailed marks a run where at least one job failed. The
	// CLI maps it to a non-zero exit without logging it a second time; the
	// diagnostics were already printed with the report.
	ErrCompilationFailed = zerr.New("compilation finished with errors")

	// ErrCacheCorrupted signals that the durable cache store could not be
	// parsed. Callers recover by treating the cache as empty.
	ErrCacheCorrupted = zerr.New("cache store corrupted")

	// ErrCacheLocked is returned when another run holds the advisory lock on
	// the durable cache store.
	ErrCacheLocked = zerr.New("cache store locked by another run")

	// ErrConfigNotFound is returned when no project configuration file exists
	// in the working directory or any of its parents.
	ErrConfigNotFound = zerr.New("project configuration not found")

	// ErrInstallerUnavailable is returned when a compiler version would need
	// to be installed but no installer command is configured.
	ErrInstallerUnavailable = zerr.New("compiler installer not configured")

	// ErrVersionNotInstalled is returned when a binary path is requested for
	// a version that is not present on disk.
	ErrVersionNotInstalled = zerr.New("compiler version not installed")
)
