package sink

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"

	"github.com/foundry-rs/compilers/internal/adapters/config"
	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

const NodeID graft.ID = "adapter.artifact_sink"

func init() {
	graft.Register(graft.Node[ports.ArtifactSink]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ProjectNodeID},
		Run: func(ctx context.Context) (ports.ArtifactSink, error) {
			cfg, err := graft.Dep[*domain.ProjectConfig](ctx)
			if err != nil {
				return nil, err
			}
			dir := cfg.ArtifactsDir
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(cfg.Root, dir)
			}
			return NewSink(dir, cfg.Root), nil
		},
	})
}
