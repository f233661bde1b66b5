// Package progrock records resolution phases on a progrock tape.
package progrock

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/keel/internal/core/ports"
)

// Recorder implements ports.Telemetry on top of a progrock writer.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
	seq atomic.Int64
}

// NewRecorder creates a Recorder writing status updates to w.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts a vertex. Vertices recorded under the same name stay
// distinct because the digest includes a sequence number.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	n := r.seq.Add(1)
	d := digest.FromString(strconv.FormatInt(n, 10) + "/" + name)
	vertex := &Vertex{vertex: r.rec.Vertex(d, name)}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes the writer.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
