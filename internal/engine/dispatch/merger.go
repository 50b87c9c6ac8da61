package dispatch

import (
	"go.trai.ch/zerr"

	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

// Merger folds per-job outputs and reused cache entries into one keyed
// artifact set. Keying by (source path, contract name) makes the merge
// order-independent: shuffling job completion changes nothing.
type Merger struct {
	sink ports.ArtifactSink
}

func NewMerger(sink ports.ArtifactSink) *Merger {
	return &Merger{sink: sink}
}

// Merge builds the run's artifact set. A job contributes artifacts only for
// its own dirty files; closure context files it compiled along the way are
// owned by other jobs or by the cache. Failed jobs contribute nothing.
// Reused entries are hydrated from their recorded artifact references.
func (m *Merger) Merge(
	settings domain.Settings,
	results []domain.JobResult,
	reused []domain.CacheEntry,
) (*domain.ArtifactSet, error) {
	requested := settings.NormalizedOutput()
	set := domain.NewArtifactSet()

	for i := range results {
		res := &results[i]
		if res.Failed() {
			continue
		}
		for _, path := range res.Job.DirtyFiles {
			for name, artifact := range res.Output.Contracts[path] {
				set.Put(domain.ArtifactID{Source: path, Contract: name}, artifact.Sparse(requested))
			}
		}
	}

	for _, entry := range reused {
		for name, ref := range entry.Artifacts {
			artifact, err := m.sink.Read(ref)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "read cached artifact"), "ref", ref)
			}
			set.Put(domain.ArtifactID{Source: entry.Path, Contract: name}, artifact.Sparse(requested))
		}
	}

	return set, nil
}
