package esbuild

import (
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/fuse/internal/core/ports"
)

var _ ports.TransformRegistry = (*Registry)(nil)

// Registry maps lowercase file extensions to transformer instances.
type Registry struct {
	mu           sync.RWMutex
	transformers map[string]ports.Transformer
}

// NewRegistry creates a Registry preloaded with the default loaders.
func NewRegistry() *Registry {
	r := &Registry{transformers: make(map[string]ports.Transformer)}
	r.Register("js", NewTransformer(api.LoaderJS))
	r.Register("mjs", NewTransformer(api.LoaderJS))
	r.Register("jsx", NewTransformer(api.LoaderJSX))
	r.Register("ts", NewTransformer(api.LoaderTS))
	r.Register("tsx", NewTransformer(api.LoaderTSX))
	r.Register("json", NewTransformer(api.LoaderJSON))
	return r
}

// Lookup returns the transformer registered for the extension.
func (r *Registry) Lookup(ext string) (ports.Transformer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transformers[strings.ToLower(ext)]
	return t, ok
}

// Register installs a transformer for the extension.
func (r *Registry) Register(ext string, t ports.Transformer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transformers[strings.ToLower(ext)] = t
}
