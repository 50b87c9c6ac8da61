package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/foundry-rs/compilers/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"github.com/foundry-rs/compilers/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"github.com/foundry-rs/compilers/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/foundry-rs/compilers/internal/adapters/sink"      //nolint:depguard // Wired in app layer
	"github.com/foundry-rs/compilers/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
	"github.com/foundry-rs/compilers/internal/engine/cache"
	"github.com/foundry-rs/compilers/internal/engine/dispatch"
	"github.com/foundry-rs/compilers/internal/engine/resolver"
	"github.com/foundry-rs/compilers/internal/engine/version"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ProjectNodeID,
			fs.WalkerNodeID,
			resolver.NodeID,
			version.NodeID,
			cache.NodeID,
			dispatch.DispatcherNodeID,
			dispatch.MergerNodeID,
			sink.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tele, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log, Telemetry: tele}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*domain.ProjectConfig](ctx)
	if err != nil {
		return nil, err
	}
	finder, err := graft.Dep[ports.SourceFinder](ctx)
	if err != nil {
		return nil, err
	}
	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}
	matcher, err := graft.Dep[*version.Matcher](ctx)
	if err != nil {
		return nil, err
	}
	c, err := graft.Dep[*cache.Cache](ctx)
	if err != nil {
		return nil, err
	}
	dispatcher, err := graft.Dep[*dispatch.Dispatcher](ctx)
	if err != nil {
		return nil, err
	}
	merger, err := graft.Dep[*dispatch.Merger](ctx)
	if err != nil {
		return nil, err
	}
	artifactSink, err := graft.Dep[ports.ArtifactSink](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(cfg, finder, res, matcher, c, dispatcher, merger, artifactSink, log), nil
}
