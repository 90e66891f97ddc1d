package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fuse/internal/adapters/config"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	return config.NewLoader(log)
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := newLoader(t).Load(root)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Root)
	assert.Empty(t, cfg.Entry)
	assert.Equal(t, domain.DefaultArtifactCacheSize, cfg.ArtifactCacheSize)
}

func TestLoader_ReadsFile(t *testing.T) {
	root := t.TempDir()
	content := `entry: /src/main.ts
artifactCacheSize: 64
aliases:
  "@": src
`
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte(content), 0o600))

	cfg, err := newLoader(t).Load(root)
	require.NoError(t, err)

	assert.Equal(t, "/src/main.ts", cfg.Entry)
	assert.Equal(t, 64, cfg.ArtifactCacheSize)
	assert.Equal(t, map[string]string{"@": "src"}, cfg.Aliases)
}

func TestLoader_InvalidYAML(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte("entry: [\n"), 0o600))

	_, err := newLoader(t).Load(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestLoader_UnreadableFile(t *testing.T) {
	root := t.TempDir()
	// A directory in place of the file fails the read with something other
	// than not-exist.
	require.NoError(t, os.Mkdir(filepath.Join(root, config.FileName), 0o700))

	_, err := newLoader(t).Load(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigReadFailed)
}
