// Package lexer extracts import edges and exported names from compiled
// module code using a tree-sitter grammar.
package lexer

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Extractor = (*Extractor)(nil)

// Extractor walks a TypeScript-grammar parse tree for import statements,
// re-exports, dynamic import() calls, and exported names.
//
// A new tree-sitter parser is created per Extract call, so this type is safe
// for concurrent use.
type Extractor struct {
	language *tree_sitter.Language
}

// NewExtractor creates an Extractor with the TypeScript grammar loaded.
func NewExtractor() *Extractor {
	return &Extractor{
		language: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
	}
}

// Extract returns the ordered import edges and exported names of code.
// Edge Info fields are left zero for the caller to resolve.
func (e *Extractor) Extract(code []byte, moduleName string) ([]domain.Dependency, []string, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(e.language); err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load extractor grammar")
	}

	tree := parser.Parse(code, nil)
	if tree == nil {
		return nil, nil, zerr.With(zerr.New("parser returned no tree"), "module", moduleName)
	}
	defer tree.Close()

	var deps []domain.Dependency
	var exports []string

	cursor := tree.RootNode().Walk()
	defer cursor.Close()
	e.walk(cursor, code, &deps, &exports)

	return deps, exports, nil
}

func (e *Extractor) walk(cursor *tree_sitter.TreeCursor, code []byte, deps *[]domain.Dependency, exports *[]string) {
	node := cursor.Node()

	switch node.Kind() {
	case "import_statement":
		if dep := staticEdge(node, code); dep != nil {
			*deps = append(*deps, *dep)
		}

	case "export_statement":
		// Re-exports ("export { a } from './x'") are edges like any import.
		if dep := staticEdge(node, code); dep != nil {
			*deps = append(*deps, *dep)
		}
		*exports = append(*exports, exportedNames(node, code)...)

	case "call_expression":
		if dep := dynamicEdge(node, code); dep != nil {
			*deps = append(*deps, *dep)
		}
	}

	if cursor.GotoFirstChild() {
		e.walk(cursor, code, deps, exports)
		for cursor.GotoNextSibling() {
			e.walk(cursor, code, deps, exports)
		}
		cursor.GotoParent()
	}
}

// staticEdge builds a dependency from an import or re-export statement.
// Returns nil when the statement carries no module source.
func staticEdge(node *tree_sitter.Node, code []byte) *domain.Dependency {
	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		return nil
	}
	specifier := strings.Trim(sourceNode.Utf8Text(code), "\"'`")
	if specifier == "" {
		return nil
	}
	return &domain.Dependency{
		Specifier: specifier,
		Statement: node.Utf8Text(code),
	}
}

// dynamicEdge builds a dependency from an import("...") call expression.
// Non-literal arguments are skipped: they cannot be resolved statically.
func dynamicEdge(node *tree_sitter.Node, code []byte) *domain.Dependency {
	fnNode := node.ChildByFieldName("function")
	if fnNode == nil || fnNode.Kind() != "import" {
		return nil
	}
	args := node.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		child := args.Child(i)
		if child == nil || child.Kind() != "string" {
			continue
		}
		specifier := strings.Trim(child.Utf8Text(code), "\"'`")
		if specifier == "" {
			return nil
		}
		return &domain.Dependency{
			Specifier: specifier,
			Statement: node.Utf8Text(code),
			Dynamic:   true,
		}
	}
	return nil
}

// exportedNames collects the names an export statement contributes.
func exportedNames(node *tree_sitter.Node, code []byte) []string {
	var names []string

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		names = append(names, declarationNames(decl, code)...)
		return names
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "default":
			names = append(names, "default")
		case "export_clause":
			for j := uint(0); j < child.ChildCount(); j++ {
				spec := child.Child(j)
				if spec == nil || spec.Kind() != "export_specifier" {
					continue
				}
				// "export { a as b }" exports b.
				name := spec.ChildByFieldName("alias")
				if name == nil {
					name = spec.ChildByFieldName("name")
				}
				if name != nil {
					names = append(names, name.Utf8Text(code))
				}
			}
		case "value", "expression":
			// "export default <expr>" has no declaration child in some shapes.
			if len(names) == 0 {
				names = append(names, "default")
			}
		}
	}
	return names
}

// declarationNames pulls names out of an exported declaration node.
func declarationNames(decl *tree_sitter.Node, code []byte) []string {
	switch decl.Kind() {
	case "function_declaration", "class_declaration":
		if name := decl.ChildByFieldName("name"); name != nil {
			return []string{name.Utf8Text(code)}
		}
	case "lexical_declaration", "variable_declaration":
		var names []string
		for i := uint(0); i < decl.ChildCount(); i++ {
			child := decl.Child(i)
			if child == nil || child.Kind() != "variable_declarator" {
				continue
			}
			if name := child.ChildByFieldName("name"); name != nil {
				names = append(names, name.Utf8Text(code))
			}
		}
		return names
	}
	return nil
}
