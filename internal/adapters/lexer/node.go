package lexer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/core/ports"
)

const NodeID graft.ID = "adapter.lexer"

func init() {
	graft.Register(graft.Node[ports.Extractor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Extractor, error) {
			return NewExtractor(), nil
		},
	})
}
