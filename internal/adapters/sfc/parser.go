// Package sfc implements the composite component toolchain: the block
// parser, the template compiler, and the style compiler.
package sfc

import (
	"regexp"
	"strings"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
)

var _ ports.ComponentParser = (*Parser)(nil)

var (
	scriptRe   = regexp.MustCompile(`(?s)<script([^>]*)>(.*?)</script>`)
	templateRe = regexp.MustCompile(`(?s)<template([^>]*)>(.*)</template>`)
	styleRe    = regexp.MustCompile(`(?s)<style([^>]*)>(.*?)</style>`)
	openTagRe  = regexp.MustCompile(`<(script|template|style)(\s[^>]*)?>`)
	attrRe     = regexp.MustCompile(`([A-Za-z][A-Za-z0-9-]*)(?:="([^"]*)")?`)
)

// Parser splits a composite component file into its logical sections.
//
// Parsing is best effort: a malformed file yields diagnostics plus whatever
// structure could be recovered, never an error.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the structured description of source.
func (p *Parser) Parse(source, path string) (*domain.ComponentDescriptor, []domain.Diagnostic) {
	desc := &domain.ComponentDescriptor{}
	var diags []domain.Diagnostic

	if m := scriptRe.FindStringSubmatchIndex(source); m != nil {
		block := blockAt(source, m)
		desc.Script = &block
	}
	// Greedy match so nested <template> tags stay inside the outer block.
	if m := templateRe.FindStringSubmatchIndex(source); m != nil {
		block := blockAt(source, m)
		desc.Template = &block
	}
	for _, m := range styleRe.FindAllStringSubmatchIndex(source, -1) {
		block := blockAt(source, m)
		style := domain.StyleBlock{Block: block}
		for _, attr := range attrRe.FindAllStringSubmatch(source[m[2]:m[3]], -1) {
			switch attr[1] {
			case "scoped":
				style.Scoped = true
			case "module":
				style.Module = true
				style.ModuleName = attr[2]
				if style.ModuleName == "" {
					style.ModuleName = domain.DefaultModuleName
				}
			}
		}
		desc.Styles = append(desc.Styles, style)
	}

	diags = append(diags, p.checkUnclosed(source, path, desc)...)
	return desc, diags
}

// checkUnclosed reports opening tags that never matched a full block.
func (p *Parser) checkUnclosed(source, path string, desc *domain.ComponentDescriptor) []domain.Diagnostic {
	counts := map[string]int{}
	if desc.Script != nil {
		counts["script"]++
	}
	if desc.Template != nil {
		counts["template"]++
	}
	counts["style"] = len(desc.Styles)

	var diags []domain.Diagnostic
	opens := map[string]int{}
	for _, m := range openTagRe.FindAllStringSubmatchIndex(source, -1) {
		tag := source[m[2]:m[3]]
		opens[tag]++
		if tag == "template" {
			// Nested template tags legitimately exceed the block count.
			continue
		}
		if opens[tag] > counts[tag] {
			line, col := position(source, m[0])
			diags = append(diags, domain.Diagnostic{
				Severity: domain.SeverityError,
				Message:  "unclosed <" + tag + "> block",
				File:     path,
				Line:     line,
				Column:   col,
				Offset:   m[0],
				Source:   source,
			})
		}
	}
	return diags
}

// blockAt builds a Block from regexp submatch indexes: m[2:4] is the attr
// list, m[4:6] the content.
func blockAt(source string, m []int) domain.Block {
	content := source[m[4]:m[5]]
	line, _ := position(source, m[4])
	block := domain.Block{
		Content: content,
		Line:    line,
		Offset:  m[4],
	}
	for _, attr := range attrRe.FindAllStringSubmatch(source[m[2]:m[3]], -1) {
		if attr[1] == "lang" {
			block.Lang = strings.ToLower(attr[2])
		}
	}
	return block
}

// position converts a byte offset into a 1-based line and column.
func position(source string, offset int) (line, col int) {
	prefix := source[:offset]
	line = strings.Count(prefix, "\n") + 1
	if idx := strings.LastIndexByte(prefix, '\n'); idx >= 0 {
		col = offset - idx
	} else {
		col = offset + 1
	}
	return line, col
}
