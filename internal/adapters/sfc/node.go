package sfc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fuse/internal/core/ports"
)

const (
	ParserNodeID   graft.ID = "adapter.sfc.parser"
	TemplateNodeID graft.ID = "adapter.sfc.template"
	StyleNodeID    graft.ID = "adapter.sfc.style"
)

func init() {
	// Parser Node
	graft.Register(graft.Node[ports.ComponentParser]{
		ID:        ParserNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ComponentParser, error) {
			return NewParser(), nil
		},
	})

	// Template Compiler Node
	graft.Register(graft.Node[ports.TemplateCompiler]{
		ID:        TemplateNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.TemplateCompiler, error) {
			return NewTemplateCompiler(), nil
		},
	})

	// Style Compiler Node
	graft.Register(graft.Node[ports.StyleCompiler]{
		ID:        StyleNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.StyleCompiler, error) {
			return NewStyleCompiler(), nil
		},
	})
}
