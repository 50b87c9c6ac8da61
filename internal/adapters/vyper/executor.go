// Package vyper invokes the Vyper compiler through its standard JSON
// interface. The request shape differs from solc in its settings block, the
// response parses the same way.
package vyper

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

type standardInput struct {
	Language string                 `json:"language"`
	Sources  map[string]sourceInput `json:"sources"`
	Settings inputSettings          `json:"settings"`
}

type sourceInput struct {
	Content string `json:"content"`
}

type inputSettings struct {
	Optimize        bool                           `json:"optimize"`
	EVMVersion      string                         `json:"evmVersion,omitempty"`
	OutputSelection map[string]map[string][]string `json:"outputSelection"`
}

var selectors = map[domain.OutputCategory][]string{
	domain.OutputABI:              {"abi"},
	domain.OutputBytecode:         {"evm.bytecode.object"},
	domain.OutputDeployedBytecode: {"evm.deployedBytecode.object"},
	domain.OutputMetadata:         {"metadata"},
	domain.OutputDevdoc:           {"devdoc"},
	domain.OutputUserdoc:          {"userdoc"},
	domain.OutputStorageLayout:    {"layout"},
}

type standardOutput struct {
	Errors    []compilerError                      `json:"errors"`
	Contracts map[string]map[string]contractOutput `json:"contracts"`
}

type compilerError struct {
	Severity         string          `json:"severity"`
	Message          string          `json:"message"`
	FormattedMessage string          `json:"formattedMessage"`
	SourceLocation   *sourceLocation `json:"sourceLocation"`
}

type sourceLocation struct {
	File string `json:"file"`
}

type contractOutput struct {
	ABI      json.RawMessage `json:"abi"`
	Metadata string          `json:"metadata"`
	Layout   json.RawMessage `json:"layout"`
	Devdoc   json.RawMessage `json:"devdoc"`
	Userdoc  json.RawMessage `json:"userdoc"`
	EVM      evmOutput       `json:"evm"`
}

type evmOutput struct {
	Bytecode         bytecodeOutput `json:"bytecode"`
	DeployedBytecode bytecodeOutput `json:"deployedBytecode"`
}

type bytecodeOutput struct {
	Object string `json:"object"`
}

// Executor implements ports.CompilerExecutor for Vyper.
type Executor struct {
	versions ports.VersionProvider
}

// NewExecutor creates a new Executor.
func NewExecutor(versions ports.VersionProvider) *Executor {
	return &Executor{versions: versions}
}

// Language returns the language this executor compiles.
func (e *Executor) Language() domain.Language {
	return domain.LangVyper
}

// Compile runs vyper over the job's source set.
func (e *Executor) Compile(ctx context.Context, job *domain.CompilationJob) (*domain.CompileOutput, error) {
	binary, err := e.versions.BinaryPath(job.Language, job.Version)
	if err != nil {
		return nil, err
	}

	input, err := json.Marshal(buildInput(job))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to marshal compiler input")
	}

	cmd := exec.CommandContext(ctx, binary, "--standard-json") //nolint:gosec // binary comes from the version provider
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, zerr.With(
			zerr.Wrap(err, "compiler process failed"),
			"stderr", strings.TrimSpace(stderr.String()),
		)
	}

	var output standardOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse compiler output"), "binary", binary)
	}
	return output.toDomain(job.Version.String()), nil
}

func buildInput(job *domain.CompilationJob) standardInput {
	sources := make(map[string]sourceInput, len(job.Sources))
	for path, content := range job.Sources {
		sources[path] = sourceInput{Content: content}
	}

	var selection []string
	for _, cat := range job.Settings.NormalizedOutput() {
		selection = append(selection, selectors[cat]...)
	}

	return standardInput{
		Language: "Vyper",
		Sources:  sources,
		Settings: inputSettings{
			Optimize:   job.Settings.Optimizer.Enabled,
			EVMVersion: job.Settings.EVMVersion,
			OutputSelection: map[string]map[string][]string{
				"*": {"*": selection},
			},
		},
	}
}

func (o *standardOutput) toDomain(version string) *domain.CompileOutput {
	out := &domain.CompileOutput{CompilerVersion: version}

	for _, e := range o.Errors {
		msg := e.FormattedMessage
		if msg == "" {
			msg = e.Message
		}
		d := domain.Diagnostic{Severity: mapSeverity(e.Severity), Message: msg}
		if e.SourceLocation != nil {
			d.File = e.SourceLocation.File
		}
		out.Diagnostics = append(out.Diagnostics, d)
	}

	if len(o.Contracts) > 0 {
		out.Contracts = make(map[string]map[string]domain.ContractArtifact, len(o.Contracts))
	}
	for file, contracts := range o.Contracts {
		converted := make(map[string]domain.ContractArtifact, len(contracts))
		for name, c := range contracts {
			converted[name] = domain.ContractArtifact{
				ABI:              c.ABI,
				Bytecode:         c.EVM.Bytecode.Object,
				DeployedBytecode: c.EVM.DeployedBytecode.Object,
				Metadata:         c.Metadata,
				Devdoc:           c.Devdoc,
				Userdoc:          c.Userdoc,
				StorageLayout:    c.Layout,
			}
		}
		out.Contracts[file] = converted
	}

	return out
}

func mapSeverity(s string) domain.Severity {
	switch s {
	case "error":
		return domain.SeverityError
	case "warning":
		return domain.SeverityWarning
	default:
		return domain.SeverityInfo
	}
}
