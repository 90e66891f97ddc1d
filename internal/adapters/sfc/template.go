package sfc

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
)

var _ ports.TemplateCompiler = (*TemplateCompiler)(nil)

var (
	elementRe   = regexp.MustCompile(`<([A-Za-z][A-Za-z0-9-]*)`)
	assetSrcRe  = regexp.MustCompile(`(src|href)="(\.\.?/[^"]*)"`)
	identPathRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)
)

// TemplateCompiler compiles a template block into an ES module exporting a
// render function. Interpolations ({{ expr }}) become template-literal
// substitutions evaluated against the render context.
type TemplateCompiler struct{}

// NewTemplateCompiler creates a new TemplateCompiler.
func NewTemplateCompiler() *TemplateCompiler {
	return &TemplateCompiler{}
}

// CompileTemplate compiles block. Errors are diagnostics; degraded code is
// still returned.
func (c *TemplateCompiler) CompileTemplate(block domain.Block, opts ports.TemplateOptions) (domain.TemplateResult, []domain.Diagnostic) {
	var diags []domain.Diagnostic

	if block.Lang != "" && block.Lang != "html" {
		diags = append(diags, domain.Diagnostic{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("no template preprocessor for lang %q, compiling as html", block.Lang),
			File:     opts.Filename,
			Line:     1,
			Offset:   0,
		})
	}

	html := block.Content
	if opts.AssetBase != "" {
		html = assetSrcRe.ReplaceAllStringFunc(html, func(attr string) string {
			m := assetSrcRe.FindStringSubmatch(attr)
			return fmt.Sprintf(`%s="%s"`, m[1], path.Join(opts.AssetBase, m[2]))
		})
	}
	if opts.ScopeID != "" {
		// The scope attribute mirrors what the scoped style selectors expect.
		html = elementRe.ReplaceAllString(html, "<$1 "+opts.ScopeID)
	}

	body, interpDiags := toTemplateLiteral(html, block, opts.Filename)
	diags = append(diags, interpDiags...)

	var b strings.Builder
	b.WriteString("export function render(_ctx = {}) {\n")
	b.WriteString("  return `" + body + "`\n")
	b.WriteString("}\n")

	return domain.TemplateResult{Code: []byte(b.String())}, diags
}

// toTemplateLiteral escapes literal text and rewrites {{ expr }} into ${expr}.
func toTemplateLiteral(html string, block domain.Block, filename string) (string, []domain.Diagnostic) {
	var b strings.Builder
	var diags []domain.Diagnostic

	rest := html
	consumed := 0
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			b.WriteString(escapeLiteral(rest))
			break
		}
		b.WriteString(escapeLiteral(rest[:open]))

		end := strings.Index(rest[open:], "}}")
		if end < 0 {
			d := domain.Diagnostic{
				Severity: domain.SeverityError,
				Message:  "unterminated interpolation",
				File:     filename,
				Line:     1 + strings.Count(html[:consumed+open], "\n"),
				Offset:   consumed + open,
			}
			diags = append(diags, d.Shift(block.Line, block.Offset))
			// Drop the broken interpolation, keep the rest as text.
			b.WriteString(escapeLiteral(rest[open:]))
			break
		}

		expr := strings.TrimSpace(rest[open+2 : open+end])
		if identPathRe.MatchString(expr) {
			// Bare identifier paths resolve against the render context.
			expr = "_ctx." + expr
		}
		b.WriteString("${" + expr + "}")
		consumed += open + end + 2
		rest = rest[open+end+2:]
	}

	return b.String(), diags
}

func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", "\\${")
	return s
}
