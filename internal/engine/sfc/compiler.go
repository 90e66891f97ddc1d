// Package sfc implements the composite component compiler: it turns one
// composite source file into a synthetic executable module plus the style
// sub-requests the serving layer answers separately.
package sfc

import (
	"encoding/base64"
	"fmt"
	"path"
	"regexp"
	"strings"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/fuse/internal/engine/artifact"
	"go.trai.ch/zerr"
)

// HotStyleModule is the import path of the runtime helper that swaps a
// style sheet in place. Part of the generated-code contract.
const HotStyleModule = "/@fuse/hmr"

var defaultExportRe = regexp.MustCompile(`(?m)^(\s*)export default[ \t]`)

// Result is the outcome of compiling a composite file's main request.
type Result struct {
	// Code is the synthetic module wiring script, template, and styles.
	Code []byte

	// Build carries the sub-results wired into Code.
	Build *domain.ComponentBuild

	// StyleHeaders lists the style sub-requests Code imports.
	StyleHeaders []domain.StyleHeader

	Diagnostics []domain.Diagnostic
}

// Compiler compiles composite component files block by block, persisting
// each block's output in the artifact cache so an edit to one block leaves
// the others' compiled results untouched.
type Compiler struct {
	parser    ports.ComponentParser
	template  ports.TemplateCompiler
	style     ports.StyleCompiler
	registry  ports.TransformRegistry
	extractor ports.Extractor
	cache     *artifact.Cache
}

// NewCompiler creates a new Compiler.
func NewCompiler(
	parser ports.ComponentParser,
	template ports.TemplateCompiler,
	style ports.StyleCompiler,
	registry ports.TransformRegistry,
	extractor ports.Extractor,
	cache *artifact.Cache,
) *Compiler {
	return &Compiler{
		parser:    parser,
		template:  template,
		style:     style,
		registry:  registry,
		extractor: extractor,
		cache:     cache,
	}
}

// Compile builds the synthetic module for one composite file. Malformed
// input degrades to diagnostics plus a best-effort module, never an error.
func (c *Compiler) Compile(source, canonicalPath, publicPath string) Result {
	entry, desc, diags := c.reconcile(source, canonicalPath)

	script, scriptDiags := c.compileScript(entry, desc, canonicalPath)
	diags = append(diags, scriptDiags...)

	scopeID := ""
	if desc.HasScopedStyle() {
		scopeID = domain.ScopeID(publicPath)
	}

	var b strings.Builder
	if len(desc.Styles) > 0 {
		fmt.Fprintf(&b, "import { updateStyle } from %q\n", HotStyleModule)
	}
	b.Write(script.Code)
	if len(script.Code) > 0 && script.Code[len(script.Code)-1] != '\n' {
		b.WriteByte('\n')
	}

	headers := make([]domain.StyleHeader, 0, len(desc.Styles))
	emittedModuleMap := false
	for i, style := range desc.Styles {
		requestPath := fmt.Sprintf("%s?type=style&index=%d", publicPath, i)
		headers = append(headers, domain.StyleHeader{
			Owner:       canonicalPath,
			RequestPath: requestPath,
			Index:       i,
		})
		fmt.Fprintf(&b, "updateStyle(%q, %q)\n", fmt.Sprintf("%s-%d", publicPath, i), requestPath)
		if style.Module {
			if !emittedModuleMap {
				b.WriteString("const __cssModules = __script.__cssModules = {}\n")
				emittedModuleMap = true
			}
			fmt.Fprintf(&b, "import __style%d from %q\n", i, requestPath+"&module")
			fmt.Fprintf(&b, "__cssModules[%q] = __style%d\n", style.ModuleName, i)
		}
	}

	if scopeID != "" {
		fmt.Fprintf(&b, "__script.__scopeId = %q\n", scopeID)
	}
	if desc.Template != nil {
		fmt.Fprintf(&b, "import { render as __render } from %q\n", publicPath+"?type=template")
		b.WriteString("__script.render = __render\n")
	}
	fmt.Fprintf(&b, "__script.__hmrId = %q\n", publicPath)
	fmt.Fprintf(&b, "__script.__file = %q\n", canonicalPath)
	b.WriteString("export default __script\n")
	if len(script.SourceMap) > 0 {
		fmt.Fprintf(&b, "//# sourceMappingURL=data:application/json;base64,%s\n",
			base64.StdEncoding.EncodeToString(script.SourceMap))
	}

	return Result{
		Code: []byte(b.String()),
		Build: &domain.ComponentBuild{
			ScopeID:  scopeID,
			Script:   script,
			Template: entry.Template,
			Styles:   entry.Styles,
		},
		StyleHeaders: headers,
		Diagnostics:  diags,
	}
}

// CompileTemplate answers the synthetic ?type=template request for one file.
func (c *Compiler) CompileTemplate(source, canonicalPath, publicPath string) (*domain.TemplateResult, []domain.Diagnostic) {
	entry, desc, diags := c.reconcile(source, canonicalPath)

	if desc.Template == nil {
		diags = append(diags, domain.Diagnostic{
			Severity: domain.SeverityError,
			Message:  "component has no template section",
			File:     canonicalPath,
			Line:     1,
		})
		return &domain.TemplateResult{}, diags
	}
	if entry.Template != nil {
		return entry.Template, diags
	}

	scopeID := ""
	if desc.HasScopedStyle() {
		scopeID = domain.ScopeID(publicPath)
	}
	result, compileDiags := c.template.CompileTemplate(*desc.Template, ports.TemplateOptions{
		Filename:  canonicalPath,
		ScopeID:   scopeID,
		AssetBase: path.Dir(publicPath),
	})
	diags = append(diags, compileDiags...)

	entry.Template = &result
	c.cache.Put(canonicalPath, entry)
	return entry.Template, diags
}

// CompileStyle answers the synthetic ?type=style&index=N request for one
// file. It fails only when index does not name a style block.
func (c *Compiler) CompileStyle(source, canonicalPath, publicPath string, index int) (*domain.StyleResult, []domain.Diagnostic, error) {
	entry, desc, diags := c.reconcile(source, canonicalPath)

	if index < 0 || index >= len(desc.Styles) {
		err := zerr.With(domain.ErrStyleIndexOutOfRange, "path", canonicalPath)
		err = zerr.With(err, "index", index)
		return nil, diags, zerr.With(err, "blocks", len(desc.Styles))
	}
	if cached := entry.StyleAt(index); cached != nil {
		return cached, diags, nil
	}

	block := desc.Styles[index]
	scopeID := ""
	if block.Scoped {
		scopeID = domain.ScopeID(publicPath)
	}
	result, compileDiags := c.style.CompileStyle(block, ports.StyleOptions{
		Filename:   canonicalPath,
		PublicPath: publicPath,
		Index:      index,
		ScopeID:    scopeID,
		Modules:    block.Module,
	})
	diags = append(diags, compileDiags...)

	entry.SetStyleAt(index, &result)
	c.cache.Put(canonicalPath, entry)
	return entry.StyleAt(index), diags, nil
}

// reconcile returns the artifact entry for canonicalPath brought up to date
// with source: blocks whose text changed since the last compile lose their
// cached results, unchanged blocks keep them. Parsing is skipped entirely
// when the source text is identical to the last call.
func (c *Compiler) reconcile(source, canonicalPath string) (*domain.ArtifactEntry, *domain.ComponentDescriptor, []domain.Diagnostic) {
	entry, ok := c.cache.Get(canonicalPath)
	if ok && entry.Source == source && entry.Descriptor != nil {
		return entry, entry.Descriptor, nil
	}
	if !ok {
		entry = &domain.ArtifactEntry{}
	}

	desc, diags := c.parser.Parse(source, canonicalPath)
	if prev := entry.Descriptor; prev != nil {
		if !blockEqual(prev.Script, desc.Script) {
			entry.Script = nil
		}
		if !blockEqual(prev.Template, desc.Template) {
			entry.Template = nil
		}
		for i := range desc.Styles {
			if i >= len(prev.Styles) || !styleBlockEqual(prev.Styles[i], desc.Styles[i]) {
				entry.SetStyleAt(i, nil)
			}
		}
		if len(entry.Styles) > len(desc.Styles) {
			entry.Styles = entry.Styles[:len(desc.Styles)]
		}
	}
	entry.Source = source
	entry.Descriptor = desc
	c.cache.Put(canonicalPath, entry)
	return entry, desc, diags
}

// compileScript compiles the script section, or synthesizes an empty
// behavior object when the file has none. The section's default export is
// rewritten to a local binding so metadata can be attached before re-export.
func (c *Compiler) compileScript(entry *domain.ArtifactEntry, desc *domain.ComponentDescriptor, canonicalPath string) (*domain.ScriptResult, []domain.Diagnostic) {
	if entry.Script != nil {
		return entry.Script, nil
	}

	block := desc.Script
	if block == nil {
		script := &domain.ScriptResult{Code: []byte("const __script = {}\n")}
		entry.Script = script
		c.cache.Put(canonicalPath, entry)
		return script, nil
	}

	var diags []domain.Diagnostic
	code := []byte(block.Content)
	var sourceMap []byte

	lang := block.Lang
	if lang == "" {
		lang = "js"
	}
	if transformer, ok := c.registry.Lookup(lang); ok {
		result, transformDiags := transformer.Transform(code, canonicalPath, domain.TransformOptions{SourceMap: true})
		for _, d := range transformDiags {
			diags = append(diags, d.Shift(block.Line, block.Offset))
		}
		code = result.Code
		sourceMap = result.SourceMap
	} else {
		diags = append(diags, domain.Diagnostic{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("no transform registered for script lang %q, using source as-is", lang),
			File:     canonicalPath,
			Line:     block.Line,
		})
	}

	deps, exports, err := c.extractor.Extract(code, canonicalPath)
	if err != nil {
		diags = append(diags, domain.Diagnostic{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("extracting script dependencies: %v", err),
			File:     canonicalPath,
			Line:     block.Line,
		})
	}

	if loc := defaultExportRe.FindSubmatchIndex(code); loc != nil {
		rewritten := make([]byte, 0, len(code)+16)
		rewritten = append(rewritten, code[:loc[3]]...)
		rewritten = append(rewritten, []byte("const __script = ")...)
		rewritten = append(rewritten, code[loc[1]:]...)
		code = rewritten
	} else {
		code = append(code, []byte("\nconst __script = {}\n")...)
	}

	script := &domain.ScriptResult{
		Code:         code,
		SourceMap:    sourceMap,
		Dependencies: deps,
		Exports:      exports,
	}
	entry.Script = script
	c.cache.Put(canonicalPath, entry)
	return script, diags
}

func blockEqual(a, b *domain.Block) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Content == b.Content && a.Lang == b.Lang
}

func styleBlockEqual(a, b domain.StyleBlock) bool {
	return a.Content == b.Content && a.Lang == b.Lang &&
		a.Scoped == b.Scoped && a.Module == b.Module && a.ModuleName == b.ModuleName
}
