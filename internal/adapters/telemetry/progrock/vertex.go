package progrock

import (
	"github.com/vito/progrock"
)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Write forwards log output to the vertex's stdout stream.
func (v *Vertex) Write(p []byte) (int, error) {
	return v.vertex.Stdout().Write(p)
}

// Done marks the vertex as finished, with err marking it failed.
func (v *Vertex) Done(err error) {
	v.vertex.Done(err)
}
