package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/zerr"

	"github.com/foundry-rs/compilers/internal/adapters/logger"
	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

const (
	NodeID        graft.ID = "adapter.config_loader"
	ProjectNodeID graft.ID = "project.config"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	// Resolved project configuration, loaded once from the working directory
	// and shared by every adapter that needs a path or setting.
	graft.Register(graft.Node[*domain.ProjectConfig]{
		ID:        ProjectNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (*domain.ProjectConfig, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to resolve working directory")
			}
			return loader.Load(cwd)
		},
	})
}
