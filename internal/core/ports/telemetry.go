package ports

import (
	"context"
	"io"

	"go.trai.ch/keel/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the progress of a resolution as a tree of vertices.
type Telemetry interface {
	// Record starts a new vertex and returns a context carrying it.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex is one recorded unit of work.
type Vertex interface {
	// Stdout returns a writer for the standard output of the unit.
	Stdout() io.Writer
	// Stderr returns a writer for the error output of the unit.
	Stderr() io.Writer
	// Log records a message with a severity.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex finished, failed when err is not nil.
	Complete(err error)
	// Cached marks the vertex as satisfied without doing work.
	Cached()
}

type vertexKey struct{}

// ContextWithVertex returns a context carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
