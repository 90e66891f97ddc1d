package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/adapters/config"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
)

const (
	ContentNodeID  graft.ID = "adapter.fs.content"
	ResolverNodeID graft.ID = "adapter.fs.resolver"
)

func init() {
	// Content Source Node
	graft.Register(graft.Node[ports.ContentSource]{
		ID:        ContentNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ContentSource, error) {
			return NewContentSource(), nil
		},
	})

	// Resolver Node
	graft.Register(graft.Node[ports.Resolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ProjectNodeID},
		Run: func(ctx context.Context) (ports.Resolver, error) {
			cfg, err := graft.Dep[*domain.ProjectConfig](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := NewResolver(cfg.Root, cfg.Aliases)
			if err != nil {
				return nil, err
			}
			return resolver, nil
		},
	})
}
