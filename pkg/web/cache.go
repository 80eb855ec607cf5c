package web

import "sync"

type cacheEntry struct {
	hash uint64
	data []byte
}

// cache remembers recently sent frames by hash so identical frames can be
// replayed from a 2-byte slot index instead of resending the pixels.
type cache struct {
	entries []cacheEntry
	idx     int
	sync.Mutex
}

func newCache(size int) *cache {
	return &cache{
		entries: make([]cacheEntry, size),
	}
}

// index returns the slot holding the given hash, or -1.
func (c *cache) index(hash uint64) int {
	for i := range c.entries {
		if c.entries[i].hash == hash && len(c.entries[i].data) > 0 {
			return i
		}
	}
	return -1
}

// add stores data under the next slot, evicting the oldest entry, and
// returns the slot used.
func (c *cache) add(hash uint64, data []byte) int {
	i := c.idx
	c.entries[i] = cacheEntry{hash: hash, data: data}
	c.idx = (c.idx + 1) % len(c.entries)
	return i
}
