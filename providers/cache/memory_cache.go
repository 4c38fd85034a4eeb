package cache

import (
	"sync"
	"time"

	"skycast.app/models"
)

// MemoryCache is the in-process SnapshotCache implementation with LRU
// eviction and caller-driven expiry sweeps.
type MemoryCache struct {
	data       map[string]Entry
	mutex      sync.RWMutex
	ttl        time.Duration
	maxEntries int
}

// NewMemoryCache creates an in-memory snapshot cache
func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryCache{
		data:       make(map[string]Entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Get returns the entry for key without judging TTL or updating access time.
func (c *MemoryCache) Get(key string) (Entry, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[key]
	return entry, exists
}

// Put inserts or overwrites the entry for key with fresh timestamps, then
// evicts the least-recently-accessed entries down to the size bound.
func (c *MemoryCache) Put(key string, snapshot models.WeatherSnapshot) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	c.data[key] = Entry{
		Key:            key,
		Snapshot:       snapshot,
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	for len(c.data) > c.maxEntries {
		c.evictOldest()
	}
}

// evictOldest removes the entry with the smallest LastAccessedAt.
// Must be called while holding the mutex.
func (c *MemoryCache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time
	first := true

	for key, entry := range c.data {
		if first || entry.LastAccessedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.LastAccessedAt
			first = false
		}
	}

	if !first {
		delete(c.data, oldestKey)
	}
}

// Touch records an access on key so LRU eviction reflects actual usage.
func (c *MemoryCache) Touch(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.data[key]
	if !exists {
		return
	}

	entry.LastAccessedAt = time.Now()
	c.data[key] = entry
}

// SweepExpired removes every entry whose TTL has elapsed, regardless of
// access recency, and returns how many were removed.
func (c *MemoryCache) SweepExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	removed := 0
	for key, entry := range c.data {
		if entry.IsExpired(c.ttl, now) {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}

// Clear removes all entries unconditionally.
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]Entry)
}

// Len returns the current entry count.
func (c *MemoryCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.data)
}
