// Package fs implements the filesystem-backed content source and module resolver.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ContentSource = (*ContentSource)(nil)

// ContentSource reads module bytes straight from disk.
type ContentSource struct{}

// NewContentSource creates a new ContentSource.
func NewContentSource() *ContentSource {
	return &ContentSource{}
}

// Read returns the bytes of the file at the given canonical path.
func (s *ContentSource) Read(ctx context.Context, canonicalPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	//nolint:gosec // Path is canonicalized by the resolver
	data, err := os.ReadFile(canonicalPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrContentNotFound, "path", canonicalPath)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read module content"), "path", canonicalPath)
	}
	return data, nil
}
