package esbuild

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/core/ports"
)

const NodeID graft.ID = "adapter.esbuild.registry"

func init() {
	graft.Register(graft.Node[ports.TransformRegistry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.TransformRegistry, error) {
			return NewRegistry(), nil
		},
	})
}
