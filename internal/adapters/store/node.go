package store

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/foundry-rs/compilers/internal/adapters/config"
	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

const NodeID graft.ID = "adapter.cache_store"

func init() {
	graft.Register(graft.Node[ports.CacheStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ProjectNodeID},
		Run: func(ctx context.Context) (ports.CacheStore, error) {
			cfg, err := graft.Dep[*domain.ProjectConfig](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.CachePath), nil
		},
	})
}
