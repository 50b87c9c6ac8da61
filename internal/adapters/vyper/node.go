package vyper

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/foundry-rs/compilers/internal/adapters/svm"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

const NodeID graft.ID = "adapter.executor.vyper"

func init() {
	graft.Register(graft.Node[*Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{svm.NodeID},
		Run: func(ctx context.Context) (*Executor, error) {
			versions, err := graft.Dep[ports.VersionProvider](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(versions), nil
		},
	})
}
