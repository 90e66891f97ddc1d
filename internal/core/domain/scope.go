package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ScopeID computes the deterministic style-scoping identifier for a
// component from its public path. The "data-v-" prefix is part of the
// generated-code contract with the serving layer.
func ScopeID(publicPath string) string {
	return fmt.Sprintf("data-v-%08x", uint32(xxhash.Sum64String(publicPath)))
}

// ClassHash computes the deterministic suffix appended to CSS-module class
// names, derived from the block's public path and index.
func ClassHash(publicPath string, index int) string {
	return fmt.Sprintf("%08x", uint32(xxhash.Sum64String(fmt.Sprintf("%s#%d", publicPath, index))))
}
