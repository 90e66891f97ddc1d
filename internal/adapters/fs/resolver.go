package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Resolver = (*Resolver)(nil)

// extensionCandidates are tried in order when a specifier omits its extension.
var extensionCandidates = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".vue", ".json"}

// Resolver maps import specifiers to canonical absolute paths on disk.
//
// Relative and root-absolute specifiers resolve within the project tree with
// extension inference. Bare specifiers resolve through the alias map when one
// matches, and are reported as external otherwise.
type Resolver struct {
	root    string
	aliases map[string]string
}

// NewResolver creates a Resolver for the project rooted at root.
func NewResolver(root string, aliases map[string]string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to get absolute path of project root"), "root", root)
	}
	return &Resolver{root: abs, aliases: aliases}, nil
}

// Resolve returns the identity of the module named by specifier when
// imported from importer. importer is empty for the entry file.
func (r *Resolver) Resolve(ctx context.Context, specifier, importer string) (domain.ModuleInfo, error) {
	if err := ctx.Err(); err != nil {
		return domain.ModuleInfo{}, err
	}

	var base string
	switch {
	case strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../"):
		if importer == "" {
			base = filepath.Join(r.root, specifier)
		} else {
			base = filepath.Join(filepath.Dir(importer), specifier)
		}
	case strings.HasPrefix(specifier, "/"):
		// Root-absolute public path.
		base = filepath.Join(r.root, specifier)
	case filepath.IsAbs(specifier):
		base = specifier
	default:
		if target, ok := r.aliases[specifier]; ok {
			base = filepath.Join(r.root, target)
			break
		}
		// Bare specifier without an alias: a published dependency served elsewhere.
		return domain.ModuleInfo{
			CanonicalPath: specifier,
			Name:          specifier,
			External:      true,
		}, nil
	}

	canonical, ok := r.locate(filepath.Clean(base))
	if !ok {
		err := zerr.With(domain.ErrResolutionFailed, "specifier", specifier)
		return domain.ModuleInfo{}, zerr.With(err, "importer", importer)
	}

	return domain.ModuleInfo{
		CanonicalPath: canonical,
		Name:          r.publicPath(canonical),
	}, nil
}

// locate applies extension and index-file inference to a candidate path.
func (r *Resolver) locate(base string) (string, bool) {
	if isFile(base) {
		return base, true
	}
	for _, ext := range extensionCandidates {
		if candidate := base + ext; isFile(candidate) {
			return candidate, true
		}
	}
	for _, ext := range extensionCandidates {
		if candidate := filepath.Join(base, "index"+ext); isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// publicPath renders a canonical path as a root-relative path with a leading
// slash, the form used in generated code and scope hashing.
func (r *Resolver) publicPath(canonical string) string {
	rel, err := filepath.Rel(r.root, canonical)
	if err != nil || strings.HasPrefix(rel, "..") {
		return canonical
	}
	return "/" + filepath.ToSlash(rel)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
