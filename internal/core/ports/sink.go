package ports

import (
	"context"

	"github.com/foundry-rs/compilers/internal/core/domain"
)

// ArtifactSink accepts the merged artifact set and owns its on-disk shape.
//
//go:generate go run go.uber.org/mock/mockgen -source=sink.go -destination=mocks/mock_sink.go -package=mocks
type ArtifactSink interface {
	// Write persists the set and returns the file written for each artifact,
	// which the cache records as artifact references.
	Write(ctx context.Context, set *domain.ArtifactSet) (map[domain.ArtifactID]string, error)

	// Read loads a single previously written artifact by its reference.
	Read(path string) (domain.ContractArtifact, error)
}
