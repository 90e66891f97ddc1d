package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/fuse/internal/core/domain"
)

func dep(path string) domain.Dependency {
	return domain.Dependency{
		Specifier: "./" + path,
		Info:      domain.ModuleInfo{CanonicalPath: "/src/" + path, Name: path},
	}
}

func TestModule_AppendSubtree(t *testing.T) {
	parent := &domain.Module{
		Dependencies:     []domain.Dependency{dep("a.ts"), dep("b.ts")},
		FullDependencies: []domain.Dependency{dep("a.ts"), dep("b.ts")},
	}
	child := &domain.Module{
		FullDependencies: []domain.Dependency{dep("c.ts"), dep("d.ts")},
		StyleHeaders: []domain.StyleHeader{
			{Owner: "/src/a.vue", RequestPath: "/src/a.vue?type=style&index=0", Index: 0},
		},
	}

	parent.AppendSubtree(child)

	assert.Len(t, parent.FullDependencies, 4)
	assert.Equal(t, "/src/c.ts", parent.FullDependencies[2].Info.CanonicalPath)
	assert.Len(t, parent.StyleHeaders, 1)
	// Direct edges are untouched by the fold.
	assert.Len(t, parent.Dependencies, 2)
}

func TestModule_UniqueModules(t *testing.T) {
	m := &domain.Module{
		FullDependencies: []domain.Dependency{dep("a.ts"), dep("b.ts"), dep("a.ts"), dep("c.ts"), dep("b.ts")},
	}

	assert.Equal(t, []string{"/src/a.ts", "/src/b.ts", "/src/c.ts"}, m.UniqueModules())
}

func TestScopeID_Deterministic(t *testing.T) {
	a := domain.ScopeID("/src/App.vue")
	b := domain.ScopeID("/src/App.vue")
	other := domain.ScopeID("/src/Other.vue")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.Regexp(t, `^data-v-[0-9a-f]{8}$`, a)
}

func TestArtifactEntry_StyleAt(t *testing.T) {
	e := &domain.ArtifactEntry{}

	assert.Nil(t, e.StyleAt(0))
	assert.Nil(t, e.StyleAt(-1))

	e.SetStyleAt(2, &domain.StyleResult{Code: []byte(".a{}")})

	assert.Nil(t, e.StyleAt(0))
	assert.Nil(t, e.StyleAt(1))
	assert.NotNil(t, e.StyleAt(2))
	assert.Nil(t, e.StyleAt(3))
}

func TestComponentDescriptor_HasScopedStyle(t *testing.T) {
	d := &domain.ComponentDescriptor{
		Styles: []domain.StyleBlock{{Scoped: false}, {Scoped: true}},
	}
	assert.True(t, d.HasScopedStyle())

	assert.False(t, (&domain.ComponentDescriptor{}).HasScopedStyle())
}
