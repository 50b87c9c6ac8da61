// Package ports defines the interfaces between the compilation engine and
// its external collaborators.
package ports

import (
	"context"

	"github.com/foundry-rs/compilers/internal/core/domain"
)

// CompilerExecutor submits one compilation job to a concrete toolchain and
// returns its structured response.
//
// A non-nil error means the invocation itself failed (binary missing,
// process could not be started or talked to); such failures are candidates
// for retry. Toolchain-reported problems, including fatal ones, come back as
// diagnostics inside CompileOutput and are never retried.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type CompilerExecutor interface {
	// Language returns the single language this executor compiles.
	Language() domain.Language

	// Compile runs the toolchain over the job's source set.
	Compile(ctx context.Context, job *domain.CompilationJob) (*domain.CompileOutput, error)
}
