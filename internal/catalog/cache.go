// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/skillforge/skillforge/pkg/skillset"
)

type (
	// Cache memoizes parsed-and-built catalogs by skillset path, so commands
	// that touch the same document repeatedly parse it once per process.
	// Failures are memoized too: a broken document stays broken until
	// Invalidate is called or the process restarts.
	Cache struct {
		mu      sync.Mutex
		entries map[string]*cacheEntry
	}

	cacheEntry struct {
		cat *Catalog
		err error
	}
)

// NewCache creates an empty catalog cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// Load returns the catalog for the skillset at path, parsing and building it
// on first use and serving the memoized result afterwards.
func (c *Cache) Load(ctx context.Context, path string) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[path]; ok {
		slog.Debug("catalog cache hit", "path", path)
		return entry.cat, entry.err
	}

	cat, err := load(path)
	c.entries[path] = &cacheEntry{cat: cat, err: err}
	return cat, err
}

func load(path string) (*Catalog, error) {
	doc, err := skillset.Parse(path)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// Invalidate drops the cached result for path, forcing the next Load to
// re-parse. Callers invalidate after rewriting a skillset file.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Reset drops every cached entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}
