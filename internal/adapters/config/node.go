package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/adapters/logger"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
)

const (
	NodeID        graft.ID = "adapter.config_loader"
	ProjectNodeID graft.ID = "adapter.config.project"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	// Loaded project configuration, rooted at the working directory unless
	// FUSE_ROOT overrides it.
	graft.Register(graft.Node[*domain.ProjectConfig]{
		ID:        ProjectNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (*domain.ProjectConfig, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			root := os.Getenv("FUSE_ROOT")
			if root == "" {
				if root, err = os.Getwd(); err != nil {
					return nil, err
				}
			}
			return loader.Load(root)
		},
	})
}
