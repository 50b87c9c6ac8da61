// Package solc invokes the Solidity compiler through its standard JSON
// interface.
package solc

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"go.trai.ch/zerr"

	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

var _ ports.CompilerExecutor = (*Executor)(nil)

// Executor implements ports.CompilerExecutor for Solidity using solc
// --standard-json over stdin/stdout.
type Executor struct {
	versions ports.VersionProvider
}

// NewExecutor creates a new Executor.
func NewExecutor(versions ports.VersionProvider) *Executor {
	return &Executor{versions: versions}
}

// Language returns the language this executor compiles.
func (e *Executor) Language() domain.Language {
	return domain.LangSolidity
}

// Compile runs solc over the job's source set. Errors reported by solc come
// back as diagnostics; a non-nil error means the process itself failed.
func (e *Executor) Compile(ctx context.Context, job *domain.CompilationJob) (*domain.CompileOutput, error) {
	binary, err := e.versions.BinaryPath(job.Language, job.Version)
	if err != nil {
		return nil, err
	}

	input, err := json.Marshal(buildInput(job))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to marshal compiler input")
	}

	stdout, err := runStandardJSON(ctx, binary, input)
	if err != nil {
		return nil, err
	}

	var output standardOutput
	if err := json.Unmarshal(stdout, &output); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse compiler output"), "binary", binary)
	}
	return output.toDomain(job.Version.String()), nil
}

// runStandardJSON feeds input to the compiler process and returns its stdout.
func runStandardJSON(ctx context.Context, binary string, input []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, "--standard-json") //nolint:gosec // binary comes from the version provider
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, zerr.With(
			zerr.Wrap(err, "compiler process failed"),
			"stderr", tail(stderr.String(), 2048),
		)
	}
	return stdout.Bytes(), nil
}

func tail(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[len(s)-max:]
}
