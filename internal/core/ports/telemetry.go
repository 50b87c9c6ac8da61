package ports

import (
	"context"
	"io"
)

// Telemetry records the progress of units of work, one vertex per
// compilation job.
type Telemetry interface {
	// Record starts a vertex for the named unit of work.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex is one recorded unit of work. Writes become its log output.
type Vertex interface {
	io.Writer

	// Done completes the vertex, with err marking it failed.
	Done(err error)
}
