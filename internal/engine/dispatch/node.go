package dispatch

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/foundry-rs/compilers/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"github.com/foundry-rs/compilers/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/foundry-rs/compilers/internal/adapters/sink"      //nolint:depguard // Wired in engine wiring
	"github.com/foundry-rs/compilers/internal/adapters/solc"      //nolint:depguard // Wired in engine wiring
	"github.com/foundry-rs/compilers/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/foundry-rs/compilers/internal/adapters/vyper"     //nolint:depguard // Wired in engine wiring
	"github.com/foundry-rs/compilers/internal/core/domain"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

const (
	// DispatcherNodeID is the unique identifier for the dispatcher Graft node.
	DispatcherNodeID graft.ID = "engine.dispatcher"
	// MergerNodeID is the unique identifier for the merger Graft node.
	MergerNodeID graft.ID = "engine.merger"
)

func init() {
	graft.Register(graft.Node[*Dispatcher]{
		ID:        DispatcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			solc.NodeID,
			vyper.NodeID,
			telemetry.NodeID,
			logger.NodeID,
			config.ProjectNodeID,
		},
		Run: func(ctx context.Context) (*Dispatcher, error) {
			solcExec, err := graft.Dep[*solc.Executor](ctx)
			if err != nil {
				return nil, err
			}
			vyperExec, err := graft.Dep[*vyper.Executor](ctx)
			if err != nil {
				return nil, err
			}
			tele, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*domain.ProjectConfig](ctx)
			if err != nil {
				return nil, err
			}
			return NewDispatcher(
				[]ports.CompilerExecutor{solcExec, vyperExec},
				tele,
				log,
				cfg.Parallelism,
			), nil
		},
	})

	graft.Register(graft.Node[*Merger]{
		ID:        MergerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{sink.NodeID},
		Run: func(ctx context.Context) (*Merger, error) {
			artifactSink, err := graft.Dep[ports.ArtifactSink](ctx)
			if err != nil {
				return nil, err
			}
			return NewMerger(artifactSink), nil
		},
	})
}
