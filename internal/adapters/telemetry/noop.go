package telemetry

import (
	"context"
	"io"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
)

// NoOp is a no-op implementation of ports.Telemetry, used in tests and when
// progress output is disabled.
type NoOp struct{}

// NewNoOp creates a new NoOp telemetry.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a no-op vertex.
func (n *NoOp) Record(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
	v := &NoOpVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (n *NoOp) Close() error { return nil }

// NoOpVertex is a no-op implementation of ports.Vertex.
type NoOpVertex struct{}

// Stdout returns a discarding writer.
func (v *NoOpVertex) Stdout() io.Writer { return io.Discard }

// Stderr returns a discarding writer.
func (v *NoOpVertex) Stderr() io.Writer { return io.Discard }

// Log does nothing.
func (v *NoOpVertex) Log(_ domain.LogLevel, _ string) {}

// Complete does nothing.
func (v *NoOpVertex) Complete(_ error) {}

// Cached does nothing.
func (v *NoOpVertex) Cached() {}
