package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/fuse/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/fuse/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/fuse/internal/engine/graph"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ProjectNodeID,
			graph.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			cfg, err := graft.Dep[*domain.ProjectConfig](ctx)
			if err != nil {
				return nil, err
			}

			builder, err := graft.Dep[*graph.Builder](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(cfg, builder, tel, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
			config.ProjectNodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*domain.ProjectConfig](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       application,
		Logger:    log,
		Telemetry: tel,
		Config:    cfg,
	}, nil
}
