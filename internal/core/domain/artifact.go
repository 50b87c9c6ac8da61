package domain

import (
	"encoding/json"
	"slices"
	"strings"
)

// ContractArtifact is the compiled output retained for one contract. Fields
// corresponding to output categories the caller did not request are left
// empty (sparse output).
type ContractArtifact struct {
	ABI              json.RawMessage `json:"abi,omitempty"`
	Bytecode         string          `json:"bin,omitempty"`
	DeployedBytecode string          `json:"binRuntime,omitempty"`
	Metadata         string          `json:"metadata,omitempty"`
	Devdoc           json.RawMessage `json:"devdoc,omitempty"`
	Userdoc          json.RawMessage `json:"userdoc,omitempty"`
	StorageLayout    json.RawMessage `json:"storageLayout,omitempty"`
}

// Sparse returns a copy keeping only the requested output categories.
func (a ContractArtifact) Sparse(requested []OutputCategory) ContractArtifact {
	var out ContractArtifact
	for _, cat := range requested {
		switch cat {
		case OutputABI:
			out.ABI = a.ABI
		case OutputBytecode:
			out.Bytecode = a.Bytecode
		case OutputDeployedBytecode:
			out.DeployedBytecode = a.DeployedBytecode
		case OutputMetadata:
			out.Metadata = a.Metadata
		case OutputDevdoc:
			out.Devdoc = a.Devdoc
		case OutputUserdoc:
			out.Userdoc = a.Userdoc
		case OutputStorageLayout:
			out.StorageLayout = a.StorageLayout
		}
	}
	return out
}

// ArtifactID keys a compiled contract by full source path and contract name.
// The contract name alone is never a key: different files may declare
// same-named contracts.
type ArtifactID struct {
	Source   string
	Contract string
}

// String renders the id as "path:Contract".
func (id ArtifactID) String() string {
	return id.Source + ":" + id.Contract
}

// ArtifactSet is the merged, queryable output of one run. It is keyed rather
// than append-ordered so the merge result is identical regardless of job
// completion order.
type ArtifactSet struct {
	artifacts map[ArtifactID]ContractArtifact
}

// NewArtifactSet creates an empty set.
func NewArtifactSet() *ArtifactSet {
	return &ArtifactSet{
		artifacts: make(map[ArtifactID]ContractArtifact),
	}
}

// Put inserts or replaces the artifact for id.
func (s *ArtifactSet) Put(id ArtifactID, a ContractArtifact) {
	s.artifacts[id] = a
}

// Get returns the artifact for id.
func (s *ArtifactSet) Get(id ArtifactID) (ContractArtifact, bool) {
	a, ok := s.artifacts[id]
	return a, ok
}

// Len returns the number of artifacts.
func (s *ArtifactSet) Len() int {
	return len(s.artifacts)
}

// IDs returns all keys sorted by source path, then contract name.
func (s *ArtifactSet) IDs() []ArtifactID {
	ids := make([]ArtifactID, 0, len(s.artifacts))
	for id := range s.artifacts {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b ArtifactID) int {
		if c := strings.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return strings.Compare(a.Contract, b.Contract)
	})
	return ids
}
