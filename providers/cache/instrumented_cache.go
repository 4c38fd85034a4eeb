package cache

import (
	"log/slog"
	"time"

	"skycast.app/metrics"
	"skycast.app/models"
)

// InstrumentedCache decorates a SnapshotCache with hit/miss and latency
// metrics.
type InstrumentedCache struct {
	cache   SnapshotCache
	metrics *metrics.CacheMetrics
}

func NewInstrumentedCache(cache SnapshotCache, cacheType string) *InstrumentedCache {
	return &InstrumentedCache{
		cache:   cache,
		metrics: metrics.NewCacheMetrics(cacheType),
	}
}

func (c *InstrumentedCache) measureLatency(operation string, fn func()) {
	start := time.Now()
	fn()
	latency := time.Since(start).Seconds()
	c.metrics.RecordLatency(operation, latency)
}

func (c *InstrumentedCache) Get(key string) (Entry, bool) {
	var entry Entry
	var found bool

	c.measureLatency("get", func() {
		entry, found = c.cache.Get(key)
	})

	if found {
		c.metrics.RecordHit()
		slog.Debug("cache hit", "key", key)
	} else {
		c.metrics.RecordMiss()
		slog.Debug("cache miss", "key", key)
	}

	return entry, found
}

func (c *InstrumentedCache) Put(key string, snapshot models.WeatherSnapshot) {
	c.measureLatency("put", func() {
		c.cache.Put(key, snapshot)
	})
	slog.Debug("cache put", "key", key)
}

func (c *InstrumentedCache) Touch(key string) {
	c.cache.Touch(key)
}

func (c *InstrumentedCache) SweepExpired() int {
	var removed int
	c.measureLatency("sweep", func() {
		removed = c.cache.SweepExpired()
	})
	return removed
}

func (c *InstrumentedCache) Clear() {
	c.cache.Clear()
}

func (c *InstrumentedCache) Len() int {
	return c.cache.Len()
}

func (c *InstrumentedCache) GetMetrics() *metrics.CacheMetrics {
	return c.metrics
}
