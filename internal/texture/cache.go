package texture

import (
	"image"
	"sync"

	"go.uber.org/zap"
)

// Resolver resolves a texture name to a decoded image.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache. Failed loads are remembered so
// a broken file is only read once.
type Cache struct {
	mu     sync.RWMutex
	items  map[string]*image.NRGBA
	index  *Index
	logger *zap.Logger
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		items:  make(map[string]*image.NRGBA),
		index:  index,
		logger: logger,
	}
}

// Resolve loads and caches a texture by name. Returns nil if not found.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil
	}

	// Fast path: read lock
	c.mu.RLock()
	if img, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return img
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := LoadTexture(path)
	if err != nil {
		c.logger.Warn("texture load failed", zap.String("name", texName), zap.Error(err))
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, exists := c.items[path]; exists {
		return existing
	}
	c.items[path] = img
	return img
}
