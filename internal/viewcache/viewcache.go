// Package viewcache caches rendered view payloads by presentation path.
package viewcache

import (
	"strings"
	"sync"
)

// Cache holds the last rendered payload per path until it is invalidated.
// The zero value is not usable; construct with New.
type Cache struct {
	mu    sync.RWMutex
	views map[string][]byte
}

// New returns an empty view cache.
func New() *Cache {
	return &Cache{
		views: make(map[string][]byte),
	}
}

// Get returns the cached payload for the path, if any.
func (c *Cache) Get(path string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	view, ok := c.views[path]

	return view, ok
}

// Set stores the rendered payload for the path.
func (c *Cache) Set(path string, view []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.views[path] = view
}

// Invalidate discards the cached payloads for the path, including its
// query-string variants, so the next request recomputes them.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.views {
		if key == path || strings.HasPrefix(key, path+"?") {
			delete(c.views, key)
		}
	}
}
