package ports

import "go.trai.ch/fuse/internal/core/domain"

// ConfigLoader loads the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration for the project rooted at root.
	// A missing config file yields defaults, not an error.
	Load(root string) (*domain.ProjectConfig, error)
}
