package graph

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/adapters/esbuild"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fuse/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fuse/internal/adapters/lexer"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fuse/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fuse/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fuse/internal/core/ports"
	enginesfc "go.trai.ch/fuse/internal/engine/sfc"
)

// NodeID is the unique identifier for the graph builder Graft node.
const NodeID graft.ID = "engine.graph_builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ResolverNodeID,
			fs.ContentNodeID,
			esbuild.NodeID,
			lexer.NodeID,
			enginesfc.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			resolver, err := graft.Dep[ports.Resolver](ctx)
			if err != nil {
				return nil, err
			}

			content, err := graft.Dep[ports.ContentSource](ctx)
			if err != nil {
				return nil, err
			}

			registry, err := graft.Dep[ports.TransformRegistry](ctx)
			if err != nil {
				return nil, err
			}

			extractor, err := graft.Dep[ports.Extractor](ctx)
			if err != nil {
				return nil, err
			}

			compiler, err := graft.Dep[*enginesfc.Compiler](ctx)
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

			return NewBuilder(resolver, content, registry, extractor, compiler, NewCache(), tel, log), nil
		},
	})
}
