package artifact

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/adapters/config"
	"go.trai.ch/fuse/internal/core/domain"
)

// NodeID is the unique identifier for the artifact cache Graft node.
const NodeID graft.ID = "engine.artifact_cache"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ProjectNodeID},
		Run: func(ctx context.Context) (*Cache, error) {
			cfg, err := graft.Dep[*domain.ProjectConfig](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.ArtifactCacheSize)
		},
	})
}
