// Package telemetry holds telemetry implementations that need no backend.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
)

// Noop is a ports.Telemetry that records nothing. It is used for quiet runs.
type Noop struct{}

// NewNoop creates a Noop telemetry.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns ctx carrying a vertex that discards everything.
func (Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	v := noopVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (Noop) Close() error { return nil }

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer               { return io.Discard }
func (noopVertex) Stderr() io.Writer               { return io.Discard }
func (noopVertex) Log(_ domain.LogLevel, _ string) {}
func (noopVertex) Complete(_ error)                {}
func (noopVertex) Cached()                         {}
