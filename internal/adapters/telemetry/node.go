package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"

	"github.com/foundry-rs/compilers/internal/adapters/telemetry/progrock"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

const NodeID graft.ID = "adapter.telemetry"

// progressEnv toggles live progress rendering.
const progressEnv = "SOLBUILD_PROGRESS"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			if os.Getenv(progressEnv) != "" {
				return progrock.New(), nil
			}
			return NewNoOp(), nil
		},
	})
}
