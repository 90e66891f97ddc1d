// Package ports defines the core interfaces for the application.
package ports

import "context"

// ContentSource is a read-through byte provider keyed by canonical module path.
//
//go:generate mockgen -source=content.go -destination=mocks/mock_content.go -package=mocks
type ContentSource interface {
	// Read returns the bytes of the module at the given canonical path.
	// It returns domain.ErrContentNotFound when the path does not exist.
	Read(ctx context.Context, canonicalPath string) ([]byte, error)
}
