package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foundry-rs/compilers/internal/core/domain"
)

func TestSettings_FingerprintIgnoresOutputSelection(t *testing.T) {
	base := domain.Settings{
		EVMVersion: "paris",
		Optimizer:  domain.Optimizer{Enabled: true, Runs: 200},
		Output:     []domain.OutputCategory{domain.OutputABI},
	}
	more := base
	more.Output = []domain.OutputCategory{domain.OutputABI, domain.OutputMetadata}

	assert.Equal(t, base.Fingerprint(), more.Fingerprint(),
		"requested output categories must not force recompilation")
}

func TestSettings_FingerprintSensitiveFields(t *testing.T) {
	base := domain.Settings{
		EVMVersion: "paris",
		Optimizer:  domain.Optimizer{Enabled: true, Runs: 200},
	}

	evm := base
	evm.EVMVersion = "shanghai"
	assert.NotEqual(t, base.Fingerprint(), evm.Fingerprint())

	runs := base
	runs.Optimizer.Runs = 1000
	assert.NotEqual(t, base.Fingerprint(), runs.Fingerprint())

	viaIR := base
	viaIR.ViaIR = true
	assert.NotEqual(t, base.Fingerprint(), viaIR.Fingerprint())

	libs := base
	libs.Libraries = map[string]string{"src/Lib.sol:Lib": "0x1234"}
	assert.NotEqual(t, base.Fingerprint(), libs.Fingerprint())
}

func TestSettings_FingerprintLibraryOrderStable(t *testing.T) {
	a := domain.Settings{Libraries: map[string]string{"x": "1", "y": "2"}}
	b := domain.Settings{Libraries: map[string]string{"y": "2", "x": "1"}}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestSettings_FingerprintExcludedListStable(t *testing.T) {
	// The exclusion list is policy with correctness impact; keep it explicit.
	assert.Equal(t, []string{"output"}, domain.FingerprintExcluded())
}

func TestSettings_NormalizedOutput(t *testing.T) {
	s := domain.Settings{}
	assert.Equal(t,
		[]domain.OutputCategory{domain.OutputABI, domain.OutputBytecode},
		s.NormalizedOutput())

	s.Output = []domain.OutputCategory{domain.OutputMetadata, domain.OutputABI, domain.OutputMetadata}
	assert.Equal(t,
		[]domain.OutputCategory{domain.OutputABI, domain.OutputMetadata},
		s.NormalizedOutput())
}

func TestCacheEntry_Retains(t *testing.T) {
	e := domain.CacheEntry{
		Retained: []domain.OutputCategory{domain.OutputABI, domain.OutputBytecode},
	}

	assert.True(t, e.Retains([]domain.OutputCategory{domain.OutputABI}))
	assert.True(t, e.Retains([]domain.OutputCategory{domain.OutputABI, domain.OutputBytecode}))
	assert.False(t, e.Retains([]domain.OutputCategory{domain.OutputMetadata}),
		"asking for a category the entry never retained is an escalation")
}
