// Package app implements the application layer for fuse.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/fuse/internal/engine/graph"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	config    *domain.ProjectConfig
	builder   *graph.Builder
	telemetry ports.Telemetry
	log       ports.Logger
}

// New creates a new App instance.
func New(config *domain.ProjectConfig, builder *graph.Builder, telemetry ports.Telemetry, log ports.Logger) *App {
	return &App{
		config:    config,
		builder:   builder,
		telemetry: telemetry,
		log:       log,
	}
}

// BuildGraph builds the module dependency graph rooted at entry. An empty
// entry falls back to the configured project entry.
func (a *App) BuildGraph(ctx context.Context, entry string) (*domain.Module, error) {
	if entry == "" {
		entry = a.config.Entry
	}
	if entry == "" {
		return nil, domain.ErrNoEntrySpecified
	}

	node, err := a.builder.Resolve(ctx, entry, "")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "building module graph"), "entry", entry)
	}

	a.log.Info(fmt.Sprintf("graph complete: %d modules, %d style sheets",
		1+len(node.UniqueModules()), len(node.StyleHeaders)))
	return node, nil
}

// Close flushes the telemetry session.
func (a *App) Close() error {
	return a.telemetry.Close()
}
