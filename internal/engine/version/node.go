package version

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/foundry-rs/compilers/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"github.com/foundry-rs/compilers/internal/adapters/svm"    //nolint:depguard // Wired in engine wiring
	"github.com/foundry-rs/compilers/internal/core/ports"
)

// NodeID is the unique identifier for the version matcher Graft node.
const NodeID graft.ID = "engine.version_matcher"

func init() {
	graft.Register(graft.Node[*Matcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{svm.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Matcher, error) {
			provider, err := graft.Dep[ports.VersionProvider](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewMatcher(provider, log), nil
		},
	})
}
