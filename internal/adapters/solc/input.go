package solc

import (
	"strings"

	"github.com/foundry-rs/compilers/internal/core/domain"
)

// standardInput is the solc --standard-json request body.
type standardInput struct {
	Language string                 `json:"language"`
	Sources  map[string]sourceInput `json:"sources"`
	Settings inputSettings          `json:"settings"`
}

type sourceInput struct {
	Content string `json:"content"`
}

type inputSettings struct {
	Optimizer       optimizerInput                 `json:"optimizer"`
	EVMVersion      string                         `json:"evmVersion,omitempty"`
	ViaIR           bool                           `json:"viaIR,omitempty"`
	Libraries       map[string]map[string]string   `json:"libraries,omitempty"`
	OutputSelection map[string]map[string][]string `json:"outputSelection"`
}

type optimizerInput struct {
	Enabled bool `json:"enabled"`
	Runs    int  `json:"runs,omitempty"`
}

// selectors maps output categories to the solc output selection entries that
// produce them.
var selectors = map[domain.OutputCategory][]string{
	domain.OutputABI:              {"abi"},
	domain.OutputBytecode:         {"evm.bytecode.object"},
	domain.OutputDeployedBytecode: {"evm.deployedBytecode.object"},
	domain.OutputMetadata:         {"metadata"},
	domain.OutputDevdoc:           {"devdoc"},
	domain.OutputUserdoc:          {"userdoc"},
	domain.OutputStorageLayout:    {"storageLayout"},
}

// buildInput assembles the standard JSON request for one job.
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
		Language: "Solidity",
		Sources:  sources,
		Settings: inputSettings{
			Optimizer: optimizerInput{
				Enabled: job.Settings.Optimizer.Enabled,
				Runs:    job.Settings.Optimizer.Runs,
			},
			EVMVersion: job.Settings.EVMVersion,
			ViaIR:      job.Settings.ViaIR,
			Libraries:  splitLibraries(job.Settings.Libraries),
			OutputSelection: map[string]map[string][]string{
				"*": {"*": selection},
			},
		},
	}
}

// splitLibraries converts "file.sol:Lib" -> address pairs into the nested
// file -> library -> address shape solc expects. A key without a file part
// goes under the global "" file.
func splitLibraries(libraries map[string]string) map[string]map[string]string {
	if len(libraries) == 0 {
		return nil
	}
	out := make(map[string]map[string]string)
	for key, addr := range libraries {
		file, name, ok := strings.Cut(key, ":")
		if !ok {
			file, name = "", key
		}
		if out[file] == nil {
			out[file] = make(map[string]string)
		}
		out[file][name] = addr
	}
	return out
}
