package solc

import (
	"encoding/json"

	"github.com/foundry-rs/compilers/internal/core/domain"
)

// standardOutput is the solc --standard-json response body, reduced to the
// fields the engine consumes.
type standardOutput struct {
	Errors    []compilerError                       `json:"errors"`
	Contracts map[string]map[string]contractOutput  `json:"contracts"`
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
	ABI           json.RawMessage `json:"abi"`
	Metadata      string          `json:"metadata"`
	Devdoc        json.RawMessage `json:"devdoc"`
	Userdoc       json.RawMessage `json:"userdoc"`
	StorageLayout json.RawMessage `json:"storageLayout"`
	EVM           evmOutput       `json:"evm"`
}

type evmOutput struct {
	Bytecode         bytecodeOutput `json:"bytecode"`
	DeployedBytecode bytecodeOutput `json:"deployedBytecode"`
}

type bytecodeOutput struct {
	Object string `json:"object"`
}

// toDomain converts the raw response into the engine's output shape.
func (o *standardOutput) toDomain(version string) *domain.CompileOutput {
	out := &domain.CompileOutput{CompilerVersion: version}

	for _, e := range o.Errors {
		msg := e.FormattedMessage
		if msg == "" {
			msg = e.Message
		}
		d := domain.Diagnostic{
			Severity: mapSeverity(e.Severity),
			Message:  msg,
		}
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
				StorageLayout:    c.StorageLayout,
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
