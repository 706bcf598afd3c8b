package texture

import (
	"fmt"
	"os"
	"sync"
)

// Resolver resolves a texture name to a mip-mapped texture.
type Resolver interface {
	Resolve(texName string) *Texture
}

// Cache is a concurrency-safe texture cache. Each texture is decoded and
// mip-mapped once, then shared read-only by every caller.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	tex *Texture
	err error
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a texture by name or path. Returns nil if not
// found or not decodable.
func (c *Cache) Resolve(texName string) *Texture {
	tex, _ := c.Load(texName)
	return tex
}

// Load is Resolve with the decode error kept. Names that are existing
// file paths bypass the index.
func (c *Cache) Load(texName string) (*Texture, error) {
	path := texName
	if _, err := os.Stat(texName); err != nil {
		if c.index == nil {
			return nil, fmt.Errorf("texture: %s: %w", texName, os.ErrNotExist)
		}
		p, ok := c.index.ResolvePath(texName)
		if !ok {
			return nil, fmt.Errorf("texture: %s: %w", texName, os.ErrNotExist)
		}
		path = p
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.tex, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	tex, err := LoadTexture(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.tex, entry.err
	}
	c.items[path] = &cacheEntry{tex: tex, err: err}
	return tex, err
}
