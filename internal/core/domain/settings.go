package domain

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// OutputCategory names one category of compiler output a caller can request.
type OutputCategory string

const (
	OutputABI              OutputCategory = "abi"
	OutputBytecode         OutputCategory = "bin"
	OutputDeployedBytecode OutputCategory = "bin-runtime"
	OutputMetadata         OutputCategory = "metadata"
	OutputDevdoc           OutputCategory = "devdoc"
	OutputUserdoc          OutputCategory = "userdoc"
	OutputStorageLayout    OutputCategory = "storage-layout"
)

// Optimizer holds the optimizer portion of the compile settings.
type Optimizer struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Runs    int  `json:"runs" yaml:"runs"`
}

// Settings holds the compiler flags for one run. The core treats it as
// opaque except for its normalized fingerprint and the requested output
// categories.
type Settings struct {
	EVMVersion string            `json:"evmVersion,omitempty" yaml:"evmVersion"`
	Optimizer  Optimizer         `json:"optimizer" yaml:"optimizer"`
	ViaIR      bool              `json:"viaIR,omitempty" yaml:"viaIR"`
	Libraries  map[string]string `json:"libraries,omitempty" yaml:"libraries"`

	// Output lists the requested output categories. Deliberately excluded
	// from the fingerprint: asking for more outputs does not change compiled
	// code, and escalation is detected separately through CacheEntry.Retained.
	Output []OutputCategory `json:"output,omitempty" yaml:"output"`
}

// Fingerprint hashes the normalized settings. Two settings values that differ
// only in fields listed in FingerprintExcluded hash identically and therefore
// do not force recompilation.
func (s Settings) Fingerprint() string {
	h := xxhash.New()
	_, _ = h.WriteString(s.EVMVersion)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(strconv.FormatBool(s.Optimizer.Enabled))
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(strconv.Itoa(s.Optimizer.Runs))
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(strconv.FormatBool(s.ViaIR))
	_, _ = h.Write([]byte{0})

	keys := make([]string, 0, len(s.Libraries))
	for k := range s.Libraries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		_, _ = h.WriteString(k)
		_, _ = h.Write([]byte{'='})
		_, _ = h.WriteString(s.Libraries[k])
		_, _ = h.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", h.Sum64())
}

// FingerprintExcluded lists the settings fields that do not participate in
// the fingerprint because they cannot change compiled output. Kept explicit
// so the reuse policy is visible and testable rather than implied.
func FingerprintExcluded() []string {
	return []string{"output"}
}

// NormalizedOutput returns the requested categories sorted and deduplicated,
// defaulting to ABI and bytecode when nothing was requested.
func (s Settings) NormalizedOutput() []OutputCategory {
	if len(s.Output) == 0 {
		return []OutputCategory{OutputABI, OutputBytecode}
	}
	out := make([]OutputCategory, len(s.Output))
	copy(out, s.Output)
	slices.Sort(out)
	return slices.Compact(out)
}
