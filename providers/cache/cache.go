// Package cache implements the bounded, time-expiring snapshot cache.
package cache

import (
	"time"

	"skycast.app/models"
)

const (
	// DefaultTTL is how long an entry stays usable after it was written.
	DefaultTTL = 10 * time.Minute
	// DefaultMaxEntries bounds the cache size; least-recently-accessed
	// entries are evicted first when the bound is exceeded.
	DefaultMaxEntries = 50
)

// Entry is one cached snapshot with its access bookkeeping.
type Entry struct {
	Key            string                 `json:"key"`
	Snapshot       models.WeatherSnapshot `json:"snapshot"`
	CreatedAt      time.Time              `json:"created_at"`
	LastAccessedAt time.Time              `json:"last_accessed_at"`
}

// IsExpired reports whether the entry's TTL has elapsed at the given instant.
// Access recency never extends the TTL.
func (e Entry) IsExpired(ttl time.Duration, now time.Time) bool {
	return now.Sub(e.CreatedAt) >= ttl
}

// SnapshotCache maps a request fingerprint to a previously computed snapshot.
// Get performs no TTL judgment and no access-time update; callers check
// expiry via Entry.IsExpired and record usage via Touch.
type SnapshotCache interface {
	Get(key string) (Entry, bool)
	Put(key string, snapshot models.WeatherSnapshot)
	Touch(key string)
	SweepExpired() int
	Clear()
	Len() int
}
