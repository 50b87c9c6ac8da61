package fs

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/foundry-rs/compilers/internal/core/ports"
)

const (
	WalkerNodeID   graft.ID = "adapter.fs.walker"
	HasherNodeID   graft.ID = "adapter.fs.hasher"
	VerifierNodeID graft.ID = "adapter.fs.verifier"
)

func init() {
	graft.Register(graft.Node[ports.SourceFinder]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.SourceFinder, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.Verifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Verifier, error) {
			return NewVerifier(), nil
		},
	})
}
