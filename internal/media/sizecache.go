package media

import (
	"os"
	"sync"
)

// SizeCache caches file sizes keyed by path. The filesystem stays
// authoritative: Get stats lazily on a miss and Refresh re-stats
// unconditionally. A stat failure yields 0, never an error, so
// downstream size math degrades instead of aborting.
type SizeCache struct {
	mu    sync.Mutex
	sizes map[string]int64
}

func NewSizeCache() *SizeCache {
	return &SizeCache{sizes: make(map[string]int64)}
}

// Put seeds the cache with a known size, typically the one observed
// during metadata extraction.
func (c *SizeCache) Put(path string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sizes[path] = size
}

// Get returns the cached size for path, statting on a cache miss.
func (c *SizeCache) Get(path string) int64 {
	c.mu.Lock()
	size, ok := c.sizes[path]
	c.mu.Unlock()
	if ok {
		return size
	}
	return c.Refresh(path)
}

// Refresh re-stats path and updates the cache. Missing or unreadable
// files are cached as 0.
func (c *SizeCache) Refresh(path string) int64 {
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	c.mu.Lock()
	c.sizes[path] = size
	c.mu.Unlock()
	return size
}

// Forget drops a single path from the cache.
func (c *SizeCache) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sizes, path)
}

// Clear empties the cache. Called on rescan.
func (c *SizeCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sizes = make(map[string]int64)
}
