package domain

// ComponentExtension is the file extension of composite component files.
const ComponentExtension = "vue"

// DefaultModuleName is the class-map key used for CSS-module style blocks
// that do not declare a custom name.
const DefaultModuleName = "$style"

// Block is one logical section of a composite component file, with enough
// position information to remap diagnostics back into the original file.
type Block struct {
	// Content is the text between the block's tags.
	Content string

	// Lang is the declared preprocessing language ("ts", "scss", ...), empty
	// for the section's default language.
	Lang string

	// Line is the 1-based line of the file on which Content starts.
	Line int

	// Offset is the byte offset of Content within the file.
	Offset int
}

// StyleBlock is a style section of a composite component.
type StyleBlock struct {
	Block

	// Scoped reports whether selectors must be constrained to the owning
	// component via the injected scope attribute.
	Scoped bool

	// Module reports whether the block requested CSS-module semantics.
	Module bool

	// ModuleName is the class-map key for a CSS-module block. Defaults to
	// DefaultModuleName when the attribute carries no value.
	ModuleName string
}

// ComponentDescriptor is the parsed structure of one composite component
// file: up to one script section, up to one template section, and zero or
// more style sections.
type ComponentDescriptor struct {
	Script   *Block
	Template *Block
	Styles   []StyleBlock
}

// HasScopedStyle reports whether any style block is scoped.
func (d *ComponentDescriptor) HasScopedStyle() bool {
	for _, s := range d.Styles {
		if s.Scoped {
			return true
		}
	}
	return false
}

// ScriptResult is the compiled output of a component's script section.
type ScriptResult struct {
	Code      []byte
	SourceMap []byte

	// Dependencies and Exports are extracted from Code after compilation.
	Dependencies []Dependency
	Exports      []string
}

// TemplateResult is the compiled output of a component's template section.
type TemplateResult struct {
	Code      []byte
	SourceMap []byte
}

// StyleResult is the compiled output of one style block.
type StyleResult struct {
	Code      []byte
	SourceMap []byte

	// Classes maps source class names to their rewritten names when the
	// block requested CSS-module semantics, nil otherwise.
	Classes map[string]string
}

// ComponentBuild is the composite-component sub-result attached to a graph
// node. Fields are populated independently as each section compiles.
type ComponentBuild struct {
	// ScopeID is the style-scoping identifier ("data-v-<hash>"), empty when
	// no style block is scoped.
	ScopeID string

	Script   *ScriptResult
	Template *TemplateResult
	Styles   []*StyleResult
}

// ArtifactEntry is one compiled-artifact cache entry, keyed by file path.
// Presence of a sub-field implies it is valid for the exact source text last
// seen for that path; the cache has no staleness check of its own.
type ArtifactEntry struct {
	// Source is the file text the entry was last reconciled against.
	Source string

	Descriptor *ComponentDescriptor
	Script     *ScriptResult
	Template   *TemplateResult
	Styles     []*StyleResult
}

// StyleAt returns the cached style result for a block index, or nil when the
// index has not been compiled since the entry was created.
func (e *ArtifactEntry) StyleAt(index int) *StyleResult {
	if index < 0 || index >= len(e.Styles) {
		return nil
	}
	return e.Styles[index]
}

// SetStyleAt stores a style result, growing the slice to fit the index.
func (e *ArtifactEntry) SetStyleAt(index int, result *StyleResult) {
	for len(e.Styles) <= index {
		e.Styles = append(e.Styles, nil)
	}
	e.Styles[index] = result
}
