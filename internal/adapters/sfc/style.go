package sfc

import (
	"fmt"
	"regexp"
	"strings"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
)

var _ ports.StyleCompiler = (*StyleCompiler)(nil)

var classRe = regexp.MustCompile(`\.(-?[A-Za-z_][A-Za-z0-9_-]*)`)

// Conditional at-rules whose bodies contain further rules.
var nestedAtRules = map[string]bool{
	"@media":    true,
	"@supports": true,
}

// StyleCompiler compiles one style block: scoped blocks get an attribute
// selector appended to every rule, module blocks get their class names
// renamed with a deterministic hash.
type StyleCompiler struct{}

// NewStyleCompiler creates a new StyleCompiler.
func NewStyleCompiler() *StyleCompiler {
	return &StyleCompiler{}
}

// CompileStyle compiles block. Errors are diagnostics; the source is still
// returned so a broken block degrades instead of vanishing.
func (c *StyleCompiler) CompileStyle(block domain.StyleBlock, opts ports.StyleOptions) (domain.StyleResult, []domain.Diagnostic) {
	if block.Lang != "" && block.Lang != "css" {
		d := domain.Diagnostic{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("no style preprocessor for lang %q, passing through", block.Lang),
			File:     opts.Filename,
			Line:     1,
		}
		return domain.StyleResult{Code: []byte(block.Content)}, []domain.Diagnostic{d.Shift(block.Line, block.Offset)}
	}

	st := &rewriteState{
		css:  block.Content,
		file: opts.Filename,
	}
	if opts.ScopeID != "" {
		st.scopeAttr = "[" + opts.ScopeID + "]"
	}
	if opts.Modules {
		st.classes = map[string]string{}
		st.hash = domain.ClassHash(opts.PublicPath, opts.Index)
	}

	out := st.rules(block.Content, 0)

	var diags []domain.Diagnostic
	for _, d := range st.diags {
		diags = append(diags, d.Shift(block.Line, block.Offset))
	}
	if len(st.diags) > 0 {
		// Selector rewriting on malformed input is unreliable.
		out = block.Content
	}

	return domain.StyleResult{Code: []byte(out), Classes: st.classes}, diags
}

type rewriteState struct {
	css       string
	file      string
	scopeAttr string
	hash      string
	classes   map[string]string
	diags     []domain.Diagnostic
}

// rules rewrites a run of rules. base is the offset of css within the whole
// block, used for diagnostic positions.
func (st *rewriteState) rules(css string, base int) string {
	var b strings.Builder
	i := 0
	for i < len(css) {
		rel := strings.IndexAny(css[i:], "{};")
		if rel < 0 {
			b.WriteString(css[i:])
			break
		}
		j := i + rel
		switch css[j] {
		case ';':
			// Statement at-rule, @import and friends.
			b.WriteString(css[i : j+1])
			i = j + 1
		case '}':
			st.unbalanced(base + j)
			b.WriteString(css[i : j+1])
			i = j + 1
		case '{':
			end := matchBrace(css, j)
			if end < 0 {
				st.unbalanced(base + j)
				b.WriteString(css[i:])
				return b.String()
			}
			prelude := css[i:j]
			body := css[j+1 : end]
			b.WriteString(st.prelude(prelude))
			b.WriteByte('{')
			if atRule := atRuleName(prelude); atRule == "" || nestedAtRules[atRule] {
				if atRule != "" {
					b.WriteString(st.rules(body, base+j+1))
				} else {
					b.WriteString(body)
				}
			} else {
				// @keyframes, @font-face: bodies are not selectors.
				b.WriteString(body)
			}
			b.WriteByte('}')
			i = end + 1
		}
	}
	return b.String()
}

// prelude rewrites the text before a brace: a selector list, or an at-rule
// prelude which passes through untouched.
func (st *rewriteState) prelude(text string) string {
	if atRuleName(text) != "" {
		return text
	}
	parts := strings.Split(text, ",")
	for i, part := range parts {
		sel := part
		if st.classes != nil {
			sel = classRe.ReplaceAllStringFunc(sel, func(m string) string {
				name := m[1:]
				renamed := name + "_" + st.hash
				st.classes[name] = renamed
				return "." + renamed
			})
		}
		if st.scopeAttr != "" {
			trimmed := strings.TrimRight(sel, " \t\r\n")
			sel = trimmed + st.scopeAttr + sel[len(trimmed):]
		}
		parts[i] = sel
	}
	return strings.Join(parts, ",")
}

func (st *rewriteState) unbalanced(offset int) {
	line, col := position(st.css, offset)
	st.diags = append(st.diags, domain.Diagnostic{
		Severity: domain.SeverityError,
		Message:  "unbalanced braces in style block",
		File:     st.file,
		Line:     line,
		Column:   col,
		Offset:   offset,
	})
}

// matchBrace returns the index of the brace closing the one at open, or -1.
func matchBrace(css string, open int) int {
	depth := 0
	for i := open; i < len(css); i++ {
		switch css[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func atRuleName(prelude string) string {
	trimmed := strings.TrimSpace(prelude)
	if !strings.HasPrefix(trimmed, "@") {
		return ""
	}
	if idx := strings.IndexAny(trimmed, " \t\n("); idx >= 0 {
		return trimmed[:idx]
	}
	return trimmed
}
