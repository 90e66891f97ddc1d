package sfc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fuse/internal/adapters/esbuild"
	"go.trai.ch/fuse/internal/adapters/lexer"
	adaptersfc "go.trai.ch/fuse/internal/adapters/sfc"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports/mocks"
	"go.trai.ch/fuse/internal/engine/artifact"
	"go.trai.ch/fuse/internal/engine/sfc"
	"go.uber.org/mock/gomock"
)

func newCompiler(t *testing.T) *sfc.Compiler {
	t.Helper()
	cache, err := artifact.New(16)
	require.NoError(t, err)
	return sfc.NewCompiler(
		adaptersfc.NewParser(),
		adaptersfc.NewTemplateCompiler(),
		adaptersfc.NewStyleCompiler(),
		esbuild.NewRegistry(),
		lexer.NewExtractor(),
		cache,
	)
}

func TestCompiler_ScopedStyle(t *testing.T) {
	source := `<template><div>hi</div></template>
<script>
export default { name: "App" }
</script>
<style scoped>
.a { color: red; }
</style>
`
	c := newCompiler(t)
	res := c.Compile(source, "/project/src/App.vue", "/src/App.vue")
	require.Empty(t, res.Diagnostics)

	code := string(res.Code)
	assert.Contains(t, code, `__script.__scopeId = "`+domain.ScopeID("/src/App.vue")+`"`)
	assert.NotContains(t, code, "__cssModules")
	assert.Contains(t, code, `import { updateStyle } from "/@fuse/hmr"`)
	assert.Contains(t, code, `updateStyle("/src/App.vue-0", "/src/App.vue?type=style&index=0")`)
	assert.Contains(t, code, `import { render as __render } from "/src/App.vue?type=template"`)
	assert.Contains(t, code, "__script.render = __render")
	assert.Contains(t, code, `__script.__hmrId = "/src/App.vue"`)
	assert.Contains(t, code, `__script.__file = "/project/src/App.vue"`)
	assert.Contains(t, code, "export default __script")

	require.Len(t, res.StyleHeaders, 1)
	assert.Equal(t, "/src/App.vue?type=style&index=0", res.StyleHeaders[0].RequestPath)
	assert.Equal(t, "/project/src/App.vue", res.StyleHeaders[0].Owner)

	assert.Equal(t, domain.ScopeID("/src/App.vue"), res.Build.ScopeID)
}

func TestCompiler_CSSModule(t *testing.T) {
	source := `<script>
export default {}
</script>
<style module="theme">
.red { color: red; }
</style>
`
	c := newCompiler(t)
	res := c.Compile(source, "/project/src/A.vue", "/src/A.vue")
	require.Empty(t, res.Diagnostics)

	code := string(res.Code)
	assert.Contains(t, code, "const __cssModules = __script.__cssModules = {}")
	assert.Contains(t, code, `import __style0 from "/src/A.vue?type=style&index=0&module"`)
	assert.Contains(t, code, `__cssModules["theme"] = __style0`)
	assert.NotContains(t, code, "__scopeId")
}

func TestCompiler_NoScriptSection(t *testing.T) {
	c := newCompiler(t)
	res := c.Compile("<template><p>x</p></template>\n", "/project/src/B.vue", "/src/B.vue")
	require.Empty(t, res.Diagnostics)

	code := string(res.Code)
	assert.Contains(t, code, "const __script = {}")
	assert.Contains(t, code, "export default __script")
}

func TestCompiler_DefaultExportRewrite(t *testing.T) {
	source := `<script lang="ts">
import { helper } from "./helper.ts"
export default { setup: () => helper() }
</script>
`
	c := newCompiler(t)
	res := c.Compile(source, "/project/src/C.vue", "/src/C.vue")
	require.Empty(t, res.Diagnostics)

	assert.Contains(t, string(res.Build.Script.Code), "const __script = ")
	assert.NotContains(t, string(res.Build.Script.Code), "export default {")

	require.Len(t, res.Build.Script.Dependencies, 1)
	assert.Equal(t, "./helper.ts", res.Build.Script.Dependencies[0].Specifier)
	assert.Equal(t, []string{"default"}, res.Build.Script.Exports)
}

func TestCompiler_StyleEditReusesScriptAndTemplate(t *testing.T) {
	before := `<template><div>{{ n }}</div></template>
<script>
export default { data: () => ({ n: 1 }) }
</script>
<style scoped>
.a { color: red; }
</style>
`
	after := `<template><div>{{ n }}</div></template>
<script>
export default { data: () => ({ n: 1 }) }
</script>
<style scoped>
.a { color: blue; }
</style>
`
	c := newCompiler(t)

	first := c.Compile(before, "/project/src/D.vue", "/src/D.vue")
	require.Empty(t, first.Diagnostics)
	firstTemplate, diags := c.CompileTemplate(before, "/project/src/D.vue", "/src/D.vue")
	require.Empty(t, diags)
	firstStyle, diags, err := c.CompileStyle(before, "/project/src/D.vue", "/src/D.vue", 0)
	require.NoError(t, err)
	require.Empty(t, diags)

	second := c.Compile(after, "/project/src/D.vue", "/src/D.vue")
	require.Empty(t, second.Diagnostics)
	secondTemplate, diags := c.CompileTemplate(after, "/project/src/D.vue", "/src/D.vue")
	require.Empty(t, diags)
	secondStyle, diags, err := c.CompileStyle(after, "/project/src/D.vue", "/src/D.vue", 0)
	require.NoError(t, err)
	require.Empty(t, diags)

	// Unchanged blocks keep their compiled artifacts.
	assert.Same(t, first.Build.Script, second.Build.Script)
	assert.Same(t, firstTemplate, secondTemplate)

	// The edited style block is recompiled.
	assert.NotSame(t, firstStyle, secondStyle)
	assert.Contains(t, string(secondStyle.Code), "blue")
}

func TestCompiler_IdempotentRecompile(t *testing.T) {
	ctrl := gomock.NewController(t)

	source := `<template><p>x</p></template>
<script lang="ts">
export default {}
</script>
<style>
.a { color: red; }
</style>
`
	transformer := mocks.NewMockTransformer(ctrl)
	transformer.EXPECT().
		Transform(gomock.Any(), "/project/src/E.vue", gomock.Any()).
		Return(domain.TransformResult{Code: []byte("export default {}\n")}, nil).
		Times(1)

	template := mocks.NewMockTemplateCompiler(ctrl)
	template.EXPECT().
		CompileTemplate(gomock.Any(), gomock.Any()).
		Return(domain.TemplateResult{Code: []byte("export function render() {}")}, nil).
		Times(1)

	style := mocks.NewMockStyleCompiler(ctrl)
	style.EXPECT().
		CompileStyle(gomock.Any(), gomock.Any()).
		Return(domain.StyleResult{Code: []byte(".a{}")}, nil).
		Times(1)

	registry := esbuild.NewRegistry()
	registry.Register("ts", transformer)

	cache, err := artifact.New(16)
	require.NoError(t, err)
	c := sfc.NewCompiler(adaptersfc.NewParser(), template, style, registry, lexer.NewExtractor(), cache)

	for i := 0; i < 2; i++ {
		res := c.Compile(source, "/project/src/E.vue", "/src/E.vue")
		require.Empty(t, res.Diagnostics)
		_, diags := c.CompileTemplate(source, "/project/src/E.vue", "/src/E.vue")
		require.Empty(t, diags)
		_, diags, err := c.CompileStyle(source, "/project/src/E.vue", "/src/E.vue", 0)
		require.NoError(t, err)
		require.Empty(t, diags)
	}
}

func TestCompiler_StyleIndexOutOfRange(t *testing.T) {
	c := newCompiler(t)
	_, _, err := c.CompileStyle("<style>.a{}</style>", "/project/src/F.vue", "/src/F.vue", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStyleIndexOutOfRange)
}

func TestCompiler_MissingTemplateSection(t *testing.T) {
	c := newCompiler(t)
	result, diags := c.CompileTemplate("<script>\nexport default {}\n</script>", "/project/src/G.vue", "/src/G.vue")
	require.NotNil(t, result)
	require.Len(t, diags, 1)
	assert.Equal(t, domain.SeverityError, diags[0].Severity)
}
