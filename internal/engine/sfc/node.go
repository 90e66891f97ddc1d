package sfc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/adapters/esbuild"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fuse/internal/adapters/lexer"          //nolint:depguard // Wired in engine wiring
	adaptersfc "go.trai.ch/fuse/internal/adapters/sfc" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/fuse/internal/engine/artifact"
)

// NodeID is the unique identifier for the component compiler Graft node.
const NodeID graft.ID = "engine.sfc_compiler"

func init() {
	graft.Register(graft.Node[*Compiler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			adaptersfc.ParserNodeID,
			adaptersfc.TemplateNodeID,
			adaptersfc.StyleNodeID,
			esbuild.NodeID,
			lexer.NodeID,
			artifact.NodeID,
		},
		Run: func(ctx context.Context) (*Compiler, error) {
			parser, err := graft.Dep[ports.ComponentParser](ctx)
			if err != nil {
				return nil, err
			}

			template, err := graft.Dep[ports.TemplateCompiler](ctx)
			if err != nil {
				return nil, err
			}

			style, err := graft.Dep[ports.StyleCompiler](ctx)
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

			cache, err := graft.Dep[*artifact.Cache](ctx)
			if err != nil {
				return nil, err
			}

			return NewCompiler(parser, template, style, registry, extractor, cache), nil
		},
	})
}
