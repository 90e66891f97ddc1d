// Package config provides the fuse.yaml configuration loader.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the project configuration file.
const FileName = "fuse.yaml"

var _ ports.ConfigLoader = (*Loader)(nil)

// fusefile mirrors the structure of fuse.yaml.
type fusefile struct {
	Entry             string            `yaml:"entry"`
	ArtifactCacheSize int               `yaml:"artifactCacheSize"`
	Aliases           map[string]string `yaml:"aliases"`
}

// Loader implements ports.ConfigLoader on a YAML file at the project root.
type Loader struct {
	log ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{log: log}
}

// Load reads fuse.yaml under root. A missing file yields defaults.
func (l *Loader) Load(root string) (*domain.ProjectConfig, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to get absolute path of project root"), "root", root)
	}

	path := filepath.Join(abs, FileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the user-provided root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.log.Info("no " + FileName + " found, using defaults")
			return domain.DefaultProjectConfig(abs), nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var file fusefile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}

	cfg := domain.DefaultProjectConfig(abs)
	cfg.Entry = file.Entry
	cfg.Aliases = file.Aliases
	if file.ArtifactCacheSize > 0 {
		cfg.ArtifactCacheSize = file.ArtifactCacheSize
	}
	return cfg, nil
}
