// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/fuse/internal/adapters/config"
	_ "go.trai.ch/fuse/internal/adapters/esbuild"
	_ "go.trai.ch/fuse/internal/adapters/fs"
	_ "go.trai.ch/fuse/internal/adapters/lexer"
	_ "go.trai.ch/fuse/internal/adapters/logger"
	_ "go.trai.ch/fuse/internal/adapters/sfc"
	_ "go.trai.ch/fuse/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/fuse/internal/app"
	_ "go.trai.ch/fuse/internal/engine/artifact"
	_ "go.trai.ch/fuse/internal/engine/graph"
	_ "go.trai.ch/fuse/internal/engine/sfc"
)
