package esbuild_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fuse/internal/adapters/esbuild"
	"go.trai.ch/fuse/internal/core/domain"
)

func TestRegistry_Defaults(t *testing.T) {
	r := esbuild.NewRegistry()

	for _, ext := range []string{"js", "mjs", "jsx", "ts", "tsx", "json"} {
		_, ok := r.Lookup(ext)
		assert.True(t, ok, "expected transformer for %q", ext)
	}

	_, ok := r.Lookup("svg")
	assert.False(t, ok)
}

func TestRegistry_LookupIsCaseInsensitive(t *testing.T) {
	r := esbuild.NewRegistry()
	_, ok := r.Lookup("TS")
	assert.True(t, ok)
}

func TestTransformer_StripsTypes(t *testing.T) {
	r := esbuild.NewRegistry()
	ts, ok := r.Lookup("ts")
	require.True(t, ok)

	src := []byte("const n: number = 1\nexport default n\n")
	result, diags := ts.Transform(src, "/src/n.ts", domain.TransformOptions{})

	assert.Empty(t, diags)
	assert.NotContains(t, string(result.Code), ": number")
	assert.Contains(t, string(result.Code), "export default")
}

func TestTransformer_SourceMap(t *testing.T) {
	r := esbuild.NewRegistry()
	ts, _ := r.Lookup("ts")

	result, diags := ts.Transform([]byte("export const x = 1\n"), "/src/x.ts", domain.TransformOptions{SourceMap: true})

	assert.Empty(t, diags)
	assert.NotEmpty(t, result.SourceMap)
	assert.Contains(t, string(result.SourceMap), `"mappings"`)
}

func TestTransformer_SyntaxErrorIsDiagnostic(t *testing.T) {
	r := esbuild.NewRegistry()
	ts, _ := r.Lookup("ts")

	_, diags := ts.Transform([]byte("const = broken\n"), "/src/broken.ts", domain.TransformOptions{})

	require.NotEmpty(t, diags)
	assert.Equal(t, domain.SeverityError, diags[0].Severity)
	assert.Equal(t, "/src/broken.ts", diags[0].File)
	assert.Equal(t, 1, diags[0].Line)
	assert.NotEmpty(t, diags[0].Frame())
}
