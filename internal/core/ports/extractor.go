package ports

import "go.trai.ch/fuse/internal/core/domain"

// Extractor pulls import edges and exported names out of compiled code.
//
// Returned dependencies carry the specifier, the literal statement text, and
// the dynamic flag; their Info field is left zero for the caller to resolve.
//
//go:generate mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type Extractor interface {
	Extract(code []byte, moduleName string) ([]domain.Dependency, []string, error)
}
