package svm

import (
	"context"
	"os"
	"strings"

	"github.com/grindlemire/graft"

	"github.com/foundry-rs/compilers/internal/adapters/logger"
	"github.com/foundry-rs/compilers/internal/core/ports"
)

const NodeID graft.ID = "adapter.version_provider"

// Environment overrides for the toolchain directory and installer command.
const (
	dirEnv       = "SOLBUILD_COMPILER_DIR"
	installerEnv = "SOLBUILD_INSTALLER"
)

func init() {
	graft.Register(graft.Node[ports.VersionProvider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.VersionProvider, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			dir := os.Getenv(dirEnv)
			if dir == "" {
				dir = DefaultDir()
			}
			var installer []string
			if raw := os.Getenv(installerEnv); raw != "" {
				installer = strings.Fields(raw)
			}
			return NewProvider(dir, installer, log), nil
		},
	})
}
