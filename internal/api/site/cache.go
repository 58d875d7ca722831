package siteapi

import "sync"

// pageCache holds rendered pages until the next content change. Every clear
// starts a new generation; a page built during an older generation is not
// stored.
type pageCache struct {
	mu    sync.RWMutex
	gen   uint64
	pages map[string][]byte
}

func newPageCache() *pageCache {
	return &pageCache{pages: make(map[string][]byte)}
}

func (c *pageCache) get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.pages[key]
	return b, ok
}

// generation is captured before loading the data a page is built from.
func (c *pageCache) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// set stores b unless the cache was cleared since gen was captured.
func (c *pageCache) set(key string, gen uint64, b []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.pages[key] = b
	return true
}

func (c *pageCache) clear() {
	c.mu.Lock()
	c.gen++
	c.pages = make(map[string][]byte)
	c.mu.Unlock()
}
