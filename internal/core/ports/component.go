package ports

import "go.trai.ch/fuse/internal/core/domain"

//go:generate mockgen -source=component.go -destination=mocks/mock_component.go -package=mocks

// ComponentParser turns the raw text of one composite component file into a
// structured descriptor. Parse errors are diagnostics; whatever structure
// was recovered is still returned.
type ComponentParser interface {
	Parse(source, path string) (*domain.ComponentDescriptor, []domain.Diagnostic)
}

// TemplateOptions carries per-invocation options into the template compiler.
type TemplateOptions struct {
	// Filename is the containing file, for diagnostics.
	Filename string

	// ScopeID is attached to rendered elements when the component has a
	// scoped style block. Empty otherwise.
	ScopeID string

	// AssetBase is the directory relative asset URLs resolve against,
	// normally the component file's directory.
	AssetBase string
}

// TemplateCompiler compiles a template block into an ES module exporting a
// render function. Compile errors are diagnostics; possibly degraded code is
// still returned.
type TemplateCompiler interface {
	CompileTemplate(block domain.Block, opts TemplateOptions) (domain.TemplateResult, []domain.Diagnostic)
}

// StyleOptions carries per-invocation options into the style compiler.
type StyleOptions struct {
	// Filename is the containing file, for diagnostics.
	Filename string

	// PublicPath is the component's public path, used for deterministic
	// CSS-module class hashing.
	PublicPath string

	// Index is the block's position within the component.
	Index int

	// ScopeID scopes every selector when non-empty.
	ScopeID string

	// Modules requests CSS-module semantics: class renaming plus a class map.
	Modules bool
}

// StyleCompiler compiles one style block. Diagnostics are remapped through
// the block's position, so their locations refer to the containing file.
type StyleCompiler interface {
	CompileStyle(block domain.StyleBlock, opts StyleOptions) (domain.StyleResult, []domain.Diagnostic)
}
