// Package artifact implements the per-file compiled artifact cache.
package artifact

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/zerr"
)

// Cache holds compiled component artifacts keyed by canonical path, with LRU
// eviction so a long-running watch session keeps a bounded footprint.
//
// Entries are heuristically reusable: when a file changes, blocks whose text
// is unchanged keep their compiled sub-artifacts. Callers compare block
// content against the cached descriptor before reusing a result.
type Cache struct {
	entries *lru.Cache[string, *domain.ArtifactEntry]
}

// New creates a Cache holding at most size entries.
func New(size int) (*Cache, error) {
	entries, err := lru.New[string, *domain.ArtifactEntry](size)
	if err != nil {
		return nil, zerr.Wrap(err, "creating artifact cache")
	}
	return &Cache{entries: entries}, nil
}

// Get returns the cached entry for canonicalPath, if any. A hit refreshes
// the entry's recency.
func (c *Cache) Get(canonicalPath string) (*domain.ArtifactEntry, bool) {
	return c.entries.Get(canonicalPath)
}

// Put stores entry under canonicalPath, evicting the least recently used
// entry when the cache is full.
func (c *Cache) Put(canonicalPath string, entry *domain.ArtifactEntry) {
	c.entries.Add(canonicalPath, entry)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.entries.Purge()
}
