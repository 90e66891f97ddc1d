package ports

import (
	"context"

	"go.trai.ch/fuse/internal/core/domain"
)

// Resolver maps an import specifier plus its importing file to a canonical
// module identity.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type Resolver interface {
	// Resolve returns the identity of the module named by specifier when
	// imported from importer. importer is empty for the entry file.
	// It returns domain.ErrResolutionFailed when the specifier cannot be located.
	Resolve(ctx context.Context, specifier, importer string) (domain.ModuleInfo, error)
}
