package sink_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foundry-rs/compilers/internal/adapters/sink"
	"github.com/foundry-rs/compilers/internal/core/domain"
)

func TestWriteThenRead(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "out")
	s := sink.NewSink(dir, root)

	source := filepath.Join(root, "src", "Token.sol")
	set := domain.NewArtifactSet()
	set.Put(domain.ArtifactID{Source: source, Contract: "Token"}, domain.ContractArtifact{
		ABI:      json.RawMessage(`[{"type":"constructor"}]`),
		Bytecode: "6080",
	})
	set.Put(domain.ArtifactID{Source: source, Contract: "TokenFactory"}, domain.ContractArtifact{
		Bytecode: "6001",
	})

	refs, err := s.Write(t.Context(), set)
	require.NoError(t, err)
	require.Len(t, refs, 2)

	tokenRef := refs[domain.ArtifactID{Source: source, Contract: "Token"}]
	assert.Equal(t, filepath.Join(dir, "src", "Token.sol", "Token.json"), tokenRef)

	artifact, err := s.Read(tokenRef)
	require.NoError(t, err)
	assert.Equal(t, "6080", artifact.Bytecode)
	assert.JSONEq(t, `[{"type":"constructor"}]`, string(artifact.ABI))
}

func TestSameNamedSourcesKeepDistinctArtifacts(t *testing.T) {
	root := t.TempDir()
	s := sink.NewSink(filepath.Join(root, "out"), root)

	a := domain.ArtifactID{Source: filepath.Join(root, "src", "a", "Token.sol"), Contract: "Token"}
	b := domain.ArtifactID{Source: filepath.Join(root, "src", "b", "Token.sol"), Contract: "Token"}

	set := domain.NewArtifactSet()
	set.Put(a, domain.ContractArtifact{Bytecode: "aaaa"})
	set.Put(b, domain.ContractArtifact{Bytecode: "bbbb"})

	refs, err := s.Write(t.Context(), set)
	require.NoError(t, err)
	require.NotEqual(t, refs[a], refs[b])

	got, err := s.Read(refs[a])
	require.NoError(t, err)
	assert.Equal(t, "aaaa", got.Bytecode)
	got, err = s.Read(refs[b])
	require.NoError(t, err)
	assert.Equal(t, "bbbb", got.Bytecode)
}

func TestSourcesOutsideRootGetStablePaths(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	s := sink.NewSink(filepath.Join(root, "out"), root)

	first := domain.ArtifactID{Source: filepath.Join(outside, "lib1", "Math.sol"), Contract: "Math"}
	second := domain.ArtifactID{Source: filepath.Join(outside, "lib2", "Math.sol"), Contract: "Math"}

	set := domain.NewArtifactSet()
	set.Put(first, domain.ContractArtifact{Bytecode: "1111"})
	set.Put(second, domain.ContractArtifact{Bytecode: "2222"})

	refs, err := s.Write(t.Context(), set)
	require.NoError(t, err)
	require.NotEqual(t, refs[first], refs[second])

	// Same input yields the same path on the next run.
	again, err := s.Write(t.Context(), set)
	require.NoError(t, err)
	assert.Equal(t, refs[first], again[first])

	got, err := s.Read(refs[first])
	require.NoError(t, err)
	assert.Equal(t, "1111", got.Bytecode)
}

func TestReadMissingArtifact(t *testing.T) {
	s := sink.NewSink(t.TempDir(), t.TempDir())
	_, err := s.Read(filepath.Join(t.TempDir(), "gone.json"))
	require.Error(t, err)
}
