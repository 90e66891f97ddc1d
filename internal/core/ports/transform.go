package ports

import "go.trai.ch/fuse/internal/core/domain"

//go:generate mockgen -source=transform.go -destination=mocks/mock_transform.go -package=mocks

// Transformer turns source text of one file kind into executable code plus a
// source map. Compile failures are reported as diagnostics next to a
// best-effort (possibly empty) result, never as a hard error.
type Transformer interface {
	Transform(source []byte, path string, opts domain.TransformOptions) (domain.TransformResult, []domain.Diagnostic)
}

// TransformRegistry maps lowercase file extensions (without the leading dot)
// to transformer instances. A missing entry is a non-fatal skip.
type TransformRegistry interface {
	// Lookup returns the transformer registered for the extension.
	Lookup(ext string) (Transformer, bool)

	// Register installs a transformer for the extension, replacing any
	// previous registration.
	Register(ext string, t Transformer)
}
