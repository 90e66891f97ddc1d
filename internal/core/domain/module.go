// Package domain contains the core domain models for the module dependency graph.
package domain

// ModuleInfo is the resolved identity of a module, produced by the resolver
// for a (specifier, importer) pair. It is immutable once produced.
type ModuleInfo struct {
	// CanonicalPath is the resolver-normalized absolute path of the module.
	// It is the unique key for all caches.
	CanonicalPath string

	// Name is the display name used in logs and diagnostics.
	Name string

	// External reports whether the module is resolved outside the project
	// source tree (e.g. a published package). External modules are recorded
	// as edges but never recursed into.
	External bool
}

// Dependency is one import edge owned by the importing module.
// Many edges may reference the same target identity.
type Dependency struct {
	// Specifier is the import path exactly as written in the source.
	Specifier string

	// Info is the resolved identity of the target module.
	Info ModuleInfo

	// Statement is the literal import/require statement text.
	Statement string

	// Dynamic reports whether the edge comes from a dynamic import() expression.
	Dynamic bool
}

// StyleHeader is a side artifact collected while building the graph: one
// entry per style block discovered in a composite component, addressed by
// the synthetic request path the serving layer answers.
type StyleHeader struct {
	// Owner is the canonical path of the component the block belongs to.
	Owner string

	// RequestPath is the synthetic path of the block's compiled output,
	// e.g. "/src/App.vue?type=style&index=0".
	RequestPath string

	// Index is the position of the block within the component.
	Index int
}

// Module is one node of the dependency graph, created when resolution of a
// file starts and filled in progressively as compilation steps complete.
type Module struct {
	// Name is the display name from the resolved ModuleInfo.
	Name string

	// Extension is the lowercase file extension without the leading dot.
	Extension string

	// Info is the resolved identity of this module.
	Info ModuleInfo

	// RawContent is the source text as read from the content source.
	// Empty when the content source reported the file missing.
	RawContent string

	// Code is the compiled output, nil until the transform completes and
	// nil forever for unsupported extensions.
	Code []byte

	// SourceMap is the source map of Code, if the transform produced one.
	SourceMap []byte

	// Exports lists the names the compiled code exports, in declaration order.
	Exports []string

	// Dependencies are the direct import edges, in declaration order.
	Dependencies []Dependency

	// FullDependencies is the transitive edge list: the direct edges followed
	// by each non-external dependency's own transitive list, concatenated in
	// declaration order. Duplicates are permitted; callers needing a unique
	// module set must deduplicate by canonical path.
	FullDependencies []Dependency

	// Component holds the composite-component sub-result when the module is
	// a composite file, nil otherwise.
	Component *ComponentBuild

	// StyleHeaders collects the style blocks of this module and of every
	// module in its subtree, in the same order as FullDependencies.
	StyleHeaders []StyleHeader

	// Diagnostics are the non-fatal compile diagnostics gathered while
	// building this node (not its subtree).
	Diagnostics []Diagnostic
}

// AppendSubtree folds a completed dependency's transitive results into m.
// It is called once per non-external direct dependency, in declaration order.
func (m *Module) AppendSubtree(dep *Module) {
	m.FullDependencies = append(m.FullDependencies, dep.FullDependencies...)
	m.StyleHeaders = append(m.StyleHeaders, dep.StyleHeaders...)
}

// UniqueModules returns the canonical paths reachable through the transitive
// edge list, deduplicated, in first-appearance order.
func (m *Module) UniqueModules() []string {
	seen := make(map[string]bool, len(m.FullDependencies))
	paths := make([]string, 0, len(m.FullDependencies))
	for _, dep := range m.FullDependencies {
		if seen[dep.Info.CanonicalPath] {
			continue
		}
		seen[dep.Info.CanonicalPath] = true
		paths = append(paths, dep.Info.CanonicalPath)
	}
	return paths
}
