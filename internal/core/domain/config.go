package domain

// DefaultArtifactCacheSize bounds the compiled-artifact cache when the
// config does not say otherwise.
const DefaultArtifactCacheSize = 512

// ProjectConfig is the project-level configuration loaded from fuse.yaml.
type ProjectConfig struct {
	// Root is the absolute project root; public paths are rendered relative to it.
	Root string

	// Entry is the default entry file, relative to Root.
	Entry string

	// ArtifactCacheSize bounds the compiled-artifact LRU cache.
	ArtifactCacheSize int

	// Aliases maps bare specifiers to project-relative paths. Bare specifiers
	// without an alias resolve as external modules.
	Aliases map[string]string
}

// DefaultProjectConfig returns the configuration used when no fuse.yaml exists.
func DefaultProjectConfig(root string) *ProjectConfig {
	return &ProjectConfig{
		Root:              root,
		ArtifactCacheSize: DefaultArtifactCacheSize,
	}
}
