package commands_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fuse/cmd/fuse/commands"
	"go.trai.ch/fuse/internal/adapters/esbuild"
	"go.trai.ch/fuse/internal/adapters/fs"
	"go.trai.ch/fuse/internal/adapters/lexer"
	"go.trai.ch/fuse/internal/adapters/logger"
	adaptersfc "go.trai.ch/fuse/internal/adapters/sfc"
	"go.trai.ch/fuse/internal/adapters/telemetry"
	"go.trai.ch/fuse/internal/app"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/engine/artifact"
	"go.trai.ch/fuse/internal/engine/graph"
	enginesfc "go.trai.ch/fuse/internal/engine/sfc"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newCLI(t *testing.T, root string) *commands.CLI {
	t.Helper()

	log := logger.New()
	log.SetOutput(io.Discard)

	resolver, err := fs.NewResolver(root, nil)
	require.NoError(t, err)

	registry := esbuild.NewRegistry()
	extractor := lexer.NewExtractor()
	cache, err := artifact.New(domain.DefaultArtifactCacheSize)
	require.NoError(t, err)
	compiler := enginesfc.NewCompiler(
		adaptersfc.NewParser(),
		adaptersfc.NewTemplateCompiler(),
		adaptersfc.NewStyleCompiler(),
		registry,
		extractor,
		cache,
	)
	builder := graph.NewBuilder(
		resolver, fs.NewContentSource(), registry, extractor, compiler,
		graph.NewCache(), telemetry.NewNoOp(), log,
	)

	cfg := domain.DefaultProjectConfig(root)
	return commands.New(app.New(cfg, builder, telemetry.NewNoOp(), log))
}

func TestGraphCommand(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.ts", `import { helper } from "./util.ts"`+"\nhelper()\n")
	writeFile(t, root, "src/util.ts", "export function helper() {}\n")

	cli := newCLI(t, root)
	var out, errOut bytes.Buffer
	cli.SetOutput(&out, &errOut)
	cli.SetArgs([]string{"graph", "/src/main.ts"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "/src/main.ts")
	assert.Contains(t, out.String(), "/src/util.ts")
}

func TestGraphCommand_Component(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/App.vue", `<template><p>{{ msg }}</p></template>
<script>
export default { data: () => ({ msg: "hi" }) }
</script>
<style scoped>
p { margin: 0; }
</style>
`)

	cli := newCLI(t, root)
	var out, errOut bytes.Buffer
	cli.SetOutput(&out, &errOut)
	cli.SetArgs([]string{"graph", "/src/App.vue"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "/src/App.vue?type=style&index=0")
}

func TestGraphCommand_MissingEntry(t *testing.T) {
	cli := newCLI(t, t.TempDir())
	var out, errOut bytes.Buffer
	cli.SetOutput(&out, &errOut)
	cli.SetArgs([]string{"graph", "/src/nope.ts"})

	assert.Error(t, cli.Execute(context.Background()))
}

func TestVersionCommand(t *testing.T) {
	cli := newCLI(t, t.TempDir())
	var out, errOut bytes.Buffer
	cli.SetOutput(&out, &errOut)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "fuse version")
}
