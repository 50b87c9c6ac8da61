// Package telemetry provides progress recording adapters. The default is a
// no-op; the progrock subpackage renders live progress.
package telemetry

import (
	"context"

	"github.com/foundry-rs/compilers/internal/core/ports"
)

// NoOp is a ports.Telemetry that records nothing.
type NoOp struct{}

// NewNoOp creates a new NoOp.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a vertex that discards everything.
func (NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close does nothing.
func (NoOp) Close() error { return nil }

type noopVertex struct{}

func (noopVertex) Write(p []byte) (int, error) { return len(p), nil }

func (noopVertex) Done(error) {}
