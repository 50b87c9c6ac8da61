package cache

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/foundry-rs/compilers/internal/adapters/fs"     //nolint:depguard // Wired in engine wiring
	"github.com/foundry-rs/compilers/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"github.com/foundry-rs/compilers/internal/adapters/store"  //nolint:depguard // Wired in engine wiring
	"github.com/foundry-rs/compilers/internal/core/ports"
)

// NodeID is the unique identifier for the cache Graft node.
const NodeID graft.ID = "engine.cache"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{store.NodeID, fs.VerifierNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Cache, error) {
			cacheStore, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}
			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(cacheStore, verifier, log), nil
		},
	})
}
