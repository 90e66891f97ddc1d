// Package graph implements the recursive module graph builder and its
// in-flight node cache.
package graph

import (
	"sync"

	"go.trai.ch/fuse/internal/core/domain"
)

// entry is one cache slot: a placeholder while the node is being built,
// then the completed node.
type entry struct {
	done chan struct{}

	// node and err are written exactly once, before done is closed.
	node *domain.Module
	err  error
}

// Cache stores one entry per canonical path. An entry is inserted before
// its node's content is loaded, so concurrent resolutions of the same path
// share one build instead of starting duplicate work. Entries that complete
// with an error are evicted so a later resolve can retry.
//
// The cache also tracks which paths each in-flight build is waiting on,
// both child builds it owns and builds it joined. A join that would close a
// loop in that wait-for graph is an import cycle; blocking on it would
// deadlock the builds against each other, so acquire reports it instead.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	waits   map[string]map[string]bool
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		waits:   make(map[string]map[string]bool),
	}
}

// acquire returns the entry for canonicalPath and records that importer is
// waiting on it. owner reports that the caller inserted the placeholder and
// must build the node and call finish. cyclic reports an import cycle:
// canonicalPath's own build is already waiting, possibly through other
// in-flight builds, on importer, so the caller must back off rather than
// block.
func (c *Cache) acquire(importer, canonicalPath string) (e *entry, owner, cyclic bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[canonicalPath]
	if !ok {
		e = &entry{done: make(chan struct{})}
		c.entries[canonicalPath] = e
		c.addWait(importer, canonicalPath)
		return e, true, false
	}
	select {
	case <-e.done:
		return e, false, false
	default:
	}
	if c.waitsOn(canonicalPath, importer) {
		return e, false, true
	}
	c.addWait(importer, canonicalPath)
	return e, false, false
}

// release drops the wait edge recorded by acquire. Joiners call it once the
// awaited build settles; owners release through finish.
func (c *Cache) release(importer, canonicalPath string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeWait(importer, canonicalPath)
}

// finish completes an owned entry and wakes every joiner. A build that
// failed is evicted so its error, which may be a cancellation from an
// unrelated sibling, is not replayed by later resolves.
func (c *Cache) finish(importer, canonicalPath string, e *entry, node *domain.Module, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeWait(importer, canonicalPath)
	delete(c.waits, canonicalPath)
	if err != nil {
		delete(c.entries, canonicalPath)
	}
	e.node = node
	e.err = err
	close(e.done)
}

func (c *Cache) addWait(importer, canonicalPath string) {
	if importer == "" {
		return
	}
	set, ok := c.waits[importer]
	if !ok {
		set = make(map[string]bool)
		c.waits[importer] = set
	}
	set[canonicalPath] = true
}

func (c *Cache) removeWait(importer, canonicalPath string) {
	set, ok := c.waits[importer]
	if !ok {
		return
	}
	delete(set, canonicalPath)
	if len(set) == 0 {
		delete(c.waits, importer)
	}
}

// waitsOn reports whether the build of from is waiting, directly or through
// other in-flight builds, on to.
func (c *Cache) waitsOn(from, to string) bool {
	if from == to {
		return true
	}
	seen := make(map[string]bool)
	var walk func(string) bool
	walk = func(n string) bool {
		if n == to {
			return true
		}
		if seen[n] {
			return false
		}
		seen[n] = true
		for next := range c.waits[n] {
			if walk(next) {
				return true
			}
		}
		return false
	}
	return walk(from)
}

// Get returns the completed node for canonicalPath. It reports false for
// unknown paths and for nodes still being built.
func (c *Cache) Get(canonicalPath string) (*domain.Module, bool) {
	c.mu.Lock()
	e, ok := c.entries[canonicalPath]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}
	select {
	case <-e.done:
	default:
		return nil, false
	}
	if e.err != nil {
		return nil, false
	}
	return e.node, true
}

// Len returns the number of entries, completed or in flight.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
