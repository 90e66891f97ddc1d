package sfc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fuse/internal/adapters/sfc"
)

const counterComponent = `<template>
  <div class="counter">{{ count }}</div>
</template>

<script lang="ts">
export default {
  data: () => ({ count: 0 }),
}
</script>

<style scoped>
.counter { color: red; }
</style>

<style module>
.big { font-size: 2em; }
</style>
`

func TestParser_Blocks(t *testing.T) {
	desc, diags := sfc.NewParser().Parse(counterComponent, "/src/Counter.vue")
	require.Empty(t, diags)

	require.NotNil(t, desc.Template)
	assert.Contains(t, desc.Template.Content, `class="counter"`)
	assert.Equal(t, 1, desc.Template.Line)

	require.NotNil(t, desc.Script)
	assert.Equal(t, "ts", desc.Script.Lang)
	assert.Contains(t, desc.Script.Content, "export default")
	assert.Equal(t, 5, desc.Script.Line)

	require.Len(t, desc.Styles, 2)
	assert.True(t, desc.Styles[0].Scoped)
	assert.False(t, desc.Styles[0].Module)
	assert.True(t, desc.Styles[1].Module)
	assert.Equal(t, "$style", desc.Styles[1].ModuleName)
	assert.True(t, desc.HasScopedStyle())
}

func TestParser_NamedModule(t *testing.T) {
	desc, diags := sfc.NewParser().Parse(`<style module="theme">.x{}</style>`, "/src/A.vue")
	require.Empty(t, diags)
	require.Len(t, desc.Styles, 1)
	assert.Equal(t, "theme", desc.Styles[0].ModuleName)
}

func TestParser_NestedTemplateTags(t *testing.T) {
	source := `<template>
  <table><template v-if="ok"><tr/></template></table>
</template>
`
	desc, diags := sfc.NewParser().Parse(source, "/src/Table.vue")
	require.Empty(t, diags)
	require.NotNil(t, desc.Template)
	assert.Contains(t, desc.Template.Content, `<template v-if="ok">`)
}

func TestParser_UnclosedBlock(t *testing.T) {
	desc, diags := sfc.NewParser().Parse("<script>\nlet a = 1\n", "/src/Broken.vue")
	assert.Nil(t, desc.Script)

	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "unclosed <script>")
	assert.Equal(t, 1, diags[0].Line)
}

func TestParser_EmptyFile(t *testing.T) {
	desc, diags := sfc.NewParser().Parse("", "/src/Empty.vue")
	require.Empty(t, diags)
	assert.Nil(t, desc.Script)
	assert.Nil(t, desc.Template)
	assert.Empty(t, desc.Styles)
}
