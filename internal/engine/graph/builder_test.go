package graph_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fuse/internal/adapters/esbuild"
	"go.trai.ch/fuse/internal/adapters/lexer"
	adaptersfc "go.trai.ch/fuse/internal/adapters/sfc"
	"go.trai.ch/fuse/internal/adapters/telemetry"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports/mocks"
	"go.trai.ch/fuse/internal/engine/artifact"
	"go.trai.ch/fuse/internal/engine/graph"
	enginesfc "go.trai.ch/fuse/internal/engine/sfc"
	"go.uber.org/mock/gomock"
)

// harness wires a builder over mocked resolution and content plus the real
// transform, extraction, and component toolchain.
type harness struct {
	resolver *mocks.MockResolver
	content  *mocks.MockContentSource
	builder  *graph.Builder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	resolver := mocks.NewMockResolver(ctrl)
	content := mocks.NewMockContentSource(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	registry := esbuild.NewRegistry()
	extractor := lexer.NewExtractor()
	cache, err := artifact.New(16)
	require.NoError(t, err)
	compiler := enginesfc.NewCompiler(
		adaptersfc.NewParser(),
		adaptersfc.NewTemplateCompiler(),
		adaptersfc.NewStyleCompiler(),
		registry,
		extractor,
		cache,
	)

	return &harness{
		resolver: resolver,
		content:  content,
		builder: graph.NewBuilder(
			resolver, content, registry, extractor, compiler,
			graph.NewCache(), telemetry.NewNoOp(), log,
		),
	}
}

func (h *harness) module(specifier, canonical string, external bool) {
	h.resolver.EXPECT().
		Resolve(gomock.Any(), specifier, gomock.Any()).
		Return(domain.ModuleInfo{CanonicalPath: canonical, Name: canonical, External: external}, nil).
		AnyTimes()
}

func (h *harness) file(canonical, source string) {
	h.content.EXPECT().
		Read(gomock.Any(), canonical).
		Return([]byte(source), nil).
		AnyTimes()
}

func TestBuilder_SingleDependency(t *testing.T) {
	h := newHarness(t)
	h.module("./main.ts", "/src/main.ts", false)
	h.module("./util.ts", "/src/util.ts", false)
	h.file("/src/main.ts", `import { helper } from "./util.ts"`+"\nhelper()\n")
	h.file("/src/util.ts", "export function helper() {}\n")

	node, err := h.builder.Resolve(context.Background(), "./main.ts", "")
	require.NoError(t, err)

	require.Len(t, node.Dependencies, 1)
	assert.Equal(t, "./util.ts", node.Dependencies[0].Specifier)
	assert.Equal(t, "/src/util.ts", node.Dependencies[0].Info.CanonicalPath)

	require.Len(t, node.FullDependencies, 1)
	assert.Equal(t, "/src/util.ts", node.FullDependencies[0].Info.CanonicalPath)
	assert.NotNil(t, node.Code)
}

func TestBuilder_TransitiveOrder(t *testing.T) {
	h := newHarness(t)
	h.module("./main.ts", "/src/main.ts", false)
	h.module("./a.ts", "/src/a.ts", false)
	h.module("./b.ts", "/src/b.ts", false)
	h.module("./shared.ts", "/src/shared.ts", false)
	h.file("/src/main.ts", `import "./a.ts"`+"\n"+`import "./b.ts"`+"\n")
	h.file("/src/a.ts", `import "./shared.ts"`+"\n")
	h.file("/src/b.ts", `import "./shared.ts"`+"\n")
	h.file("/src/shared.ts", "export const x = 1\n")

	node, err := h.builder.Resolve(context.Background(), "./main.ts", "")
	require.NoError(t, err)

	// Direct edges first, then each child's transitive list in declaration
	// order. Duplicates are allowed.
	paths := make([]string, 0, len(node.FullDependencies))
	for _, dep := range node.FullDependencies {
		paths = append(paths, dep.Info.CanonicalPath)
	}
	assert.Equal(t, []string{"/src/a.ts", "/src/b.ts", "/src/shared.ts", "/src/shared.ts"}, paths)

	assert.Equal(t, []string{"/src/a.ts", "/src/b.ts", "/src/shared.ts"}, node.UniqueModules())
}

func TestBuilder_ExternalNotRecursed(t *testing.T) {
	h := newHarness(t)
	h.module("./main.ts", "/src/main.ts", false)
	h.module("vue", "vue", true)
	h.file("/src/main.ts", `import { createApp } from "vue"`+"\ncreateApp()\n")
	// No content expectation for "vue": a read would fail the test.

	node, err := h.builder.Resolve(context.Background(), "./main.ts", "")
	require.NoError(t, err)

	require.Len(t, node.Dependencies, 1)
	assert.True(t, node.Dependencies[0].Info.External)
	require.Len(t, node.FullDependencies, 1)
}

func TestBuilder_SharedDependencyCompiledOnce(t *testing.T) {
	h := newHarness(t)
	h.module("./main.ts", "/src/main.ts", false)
	h.module("./a.ts", "/src/a.ts", false)
	h.module("./b.ts", "/src/b.ts", false)
	h.module("./shared.ts", "/src/shared.ts", false)
	h.file("/src/main.ts", `import "./a.ts"`+"\n"+`import "./b.ts"`+"\n")
	h.file("/src/a.ts", `import "./shared.ts"`+"\n")
	h.file("/src/b.ts", `import "./shared.ts"`+"\n")

	// The shared file's content is read exactly once: the second resolution
	// joins the in-flight build instead of starting over.
	h.content.EXPECT().
		Read(gomock.Any(), "/src/shared.ts").
		Return([]byte("export const x = 1\n"), nil).
		Times(1)

	_, err := h.builder.Resolve(context.Background(), "./main.ts", "")
	require.NoError(t, err)
}

func TestBuilder_Idempotent(t *testing.T) {
	h := newHarness(t)
	h.module("./main.ts", "/src/main.ts", false)
	h.content.EXPECT().
		Read(gomock.Any(), "/src/main.ts").
		Return([]byte("export const x = 1\n"), nil).
		Times(1)

	first, err := h.builder.Resolve(context.Background(), "./main.ts", "")
	require.NoError(t, err)

	second, err := h.builder.Resolve(context.Background(), "./main.ts", "")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestBuilder_ImportCycle(t *testing.T) {
	h := newHarness(t)
	h.module("./a.ts", "/src/a.ts", false)
	h.module("./b.ts", "/src/b.ts", false)
	h.file("/src/a.ts", `import "./b.ts"`+"\n")
	h.file("/src/b.ts", `import "./a.ts"`+"\n")

	node, err := h.builder.Resolve(context.Background(), "./a.ts", "")
	require.NoError(t, err)

	// The cyclic edge is recorded but not recursed into.
	require.Len(t, node.Dependencies, 1)
	bDeps := node.FullDependencies
	require.Len(t, bDeps, 2)
	assert.Equal(t, "/src/b.ts", bDeps[0].Info.CanonicalPath)
	assert.Equal(t, "/src/a.ts", bDeps[1].Info.CanonicalPath)
}

func TestBuilder_CrossBranchImportCycle(t *testing.T) {
	h := newHarness(t)
	h.module("./main.ts", "/src/main.ts", false)
	h.module("./b.ts", "/src/b.ts", false)
	h.module("./c.ts", "/src/c.ts", false)
	h.file("/src/main.ts", `import "./b.ts"`+"\n"+`import "./c.ts"`+"\n")

	// Gate the sibling reads on each other so both builds own their cache
	// entry before either recurses into the shared cycle edge.
	bReading := make(chan struct{})
	cReading := make(chan struct{})
	h.content.EXPECT().
		Read(gomock.Any(), "/src/b.ts").
		DoAndReturn(func(context.Context, string) ([]byte, error) {
			close(bReading)
			<-cReading
			return []byte(`import "./c.ts"` + "\n"), nil
		})
	h.content.EXPECT().
		Read(gomock.Any(), "/src/c.ts").
		DoAndReturn(func(context.Context, string) ([]byte, error) {
			close(cReading)
			<-bReading
			return []byte(`import "./b.ts"` + "\n"), nil
		})

	type result struct {
		node *domain.Module
		err  error
	}
	done := make(chan result, 1)
	go func() {
		node, err := h.builder.Resolve(context.Background(), "./main.ts", "")
		done <- result{node, err}
	}()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		require.Len(t, res.node.Dependencies, 2)
		// Both cycle members end up in the closure; the back edge is kept
		// but not recursed into.
		assert.Contains(t, res.node.UniqueModules(), "/src/b.ts")
		assert.Contains(t, res.node.UniqueModules(), "/src/c.ts")
	case <-time.After(5 * time.Second):
		t.Fatal("import cycle across sibling branches did not settle")
	}
}

func TestBuilder_FailedBuildIsRetried(t *testing.T) {
	h := newHarness(t)
	h.module("./main.ts", "/src/main.ts", false)

	gomock.InOrder(
		h.content.EXPECT().
			Read(gomock.Any(), "/src/main.ts").
			Return(nil, domain.ErrContentNotFound),
		h.content.EXPECT().
			Read(gomock.Any(), "/src/main.ts").
			Return([]byte("export const x = 1\n"), nil),
	)

	_, err := h.builder.Resolve(context.Background(), "./main.ts", "")
	require.ErrorIs(t, err, domain.ErrEntryNotFound)

	// The failed attempt is not memoized; the next resolve builds the node.
	node, err := h.builder.Resolve(context.Background(), "./main.ts", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, node.Exports)
}

func TestBuilder_UnsupportedExtensionSkipped(t *testing.T) {
	h := newHarness(t)
	h.module("./logo.svg", "/src/logo.svg", false)
	h.file("/src/logo.svg", "<svg></svg>")

	node, err := h.builder.Resolve(context.Background(), "./logo.svg", "")
	require.NoError(t, err)

	assert.Nil(t, node.Code)
	assert.Empty(t, node.Dependencies)
	assert.Equal(t, "<svg></svg>", node.RawContent)
}

func TestBuilder_EntryNotFound(t *testing.T) {
	h := newHarness(t)
	h.module("./gone.ts", "/src/gone.ts", false)
	h.content.EXPECT().
		Read(gomock.Any(), "/src/gone.ts").
		Return(nil, domain.ErrContentNotFound)

	_, err := h.builder.Resolve(context.Background(), "./gone.ts", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestBuilder_NestedNotFoundDegrades(t *testing.T) {
	h := newHarness(t)
	h.module("./main.ts", "/src/main.ts", false)
	h.module("./gone.ts", "/src/gone.ts", false)
	h.file("/src/main.ts", `import "./gone.ts"`+"\n")
	h.content.EXPECT().
		Read(gomock.Any(), "/src/gone.ts").
		Return(nil, domain.ErrContentNotFound)

	node, err := h.builder.Resolve(context.Background(), "./main.ts", "")
	require.NoError(t, err)

	require.Len(t, node.Dependencies, 1)
	missing, ok := h.builder.Cache().Get("/src/gone.ts")
	require.True(t, ok)
	assert.Empty(t, missing.RawContent)
	assert.Empty(t, missing.Dependencies)
}

func TestBuilder_ResolutionErrorPropagates(t *testing.T) {
	h := newHarness(t)
	h.module("./main.ts", "/src/main.ts", false)
	h.file("/src/main.ts", `import "missing-pkg"`+"\n")
	h.resolver.EXPECT().
		Resolve(gomock.Any(), "missing-pkg", "/src/main.ts").
		Return(domain.ModuleInfo{}, domain.ErrResolutionFailed)

	_, err := h.builder.Resolve(context.Background(), "./main.ts", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrResolutionFailed)
}

func TestBuilder_CompositeComponent(t *testing.T) {
	h := newHarness(t)
	h.module("./App.vue", "/src/App.vue", false)
	h.module("./helper.ts", "/src/helper.ts", false)
	h.file("/src/App.vue", `<template><div>{{ n }}</div></template>
<script lang="ts">
import { helper } from "./helper.ts"
export default { data: () => ({ n: helper() }) }
</script>
<style scoped>
.a { color: red; }
</style>
`)
	h.file("/src/helper.ts", "export function helper() { return 1 }\n")

	node, err := h.builder.Resolve(context.Background(), "./App.vue", "")
	require.NoError(t, err)

	require.NotNil(t, node.Component)
	assert.Equal(t, domain.ScopeID("/src/App.vue"), node.Component.ScopeID)

	require.Len(t, node.Dependencies, 1)
	assert.Equal(t, "/src/helper.ts", node.Dependencies[0].Info.CanonicalPath)

	require.Len(t, node.StyleHeaders, 1)
	assert.Equal(t, "/src/App.vue?type=style&index=0", node.StyleHeaders[0].RequestPath)
	assert.Equal(t, 0, node.StyleHeaders[0].Index)

	assert.Contains(t, string(node.Code), "export default __script")
}

func TestBuilder_CompileErrorIsDiagnosticNotFailure(t *testing.T) {
	h := newHarness(t)
	h.module("./bad.ts", "/src/bad.ts", false)
	h.file("/src/bad.ts", "const = broken\n")

	node, err := h.builder.Resolve(context.Background(), "./bad.ts", "")
	require.NoError(t, err)
	require.NotEmpty(t, node.Diagnostics)
	assert.Equal(t, domain.SeverityError, node.Diagnostics[0].Severity)
}
