package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skycast.app/models"
)

func snapshotFor(name string) models.WeatherSnapshot {
	return models.WeatherSnapshot{
		LocationName: name,
		Current:     models.CurrentConditions{Temp: 21, Description: "Clear sky"},
	}
}

func TestMemoryCache(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		c := NewMemoryCache(DefaultTTL, DefaultMaxEntries)
		c.Put("london", snapshotFor("London"))

		entry, found := c.Get("london")
		require.True(t, found)
		assert.Equal(t, "london", entry.Key)
		assert.Equal(t, "London", entry.Snapshot.LocationName)
		assert.False(t, entry.CreatedAt.IsZero())
		assert.False(t, entry.LastAccessedAt.Before(entry.CreatedAt))
	})

	t.Run("miss on absent key", func(t *testing.T) {
		c := NewMemoryCache(DefaultTTL, DefaultMaxEntries)
		_, found := c.Get("nowhere")
		assert.False(t, found)
	})

	t.Run("evicts least recently accessed when over the bound", func(t *testing.T) {
		c := NewMemoryCache(DefaultTTL, 3)
		for i := 0; i < 3; i++ {
			c.Put(fmt.Sprintf("city-%d", i), snapshotFor("x"))
			time.Sleep(time.Millisecond)
		}

		// city-0 becomes the most recently used entry.
		c.Touch("city-0")
		time.Sleep(time.Millisecond)

		c.Put("city-3", snapshotFor("x"))

		assert.Equal(t, 3, c.Len())
		_, found := c.Get("city-1")
		assert.False(t, found, "least recently accessed entry should be gone")
		for _, key := range []string{"city-0", "city-2", "city-3"} {
			_, found := c.Get(key)
			assert.True(t, found, "%s should survive eviction", key)
		}
	})

	t.Run("touch does not extend the TTL", func(t *testing.T) {
		c := NewMemoryCache(20*time.Millisecond, DefaultMaxEntries)
		c.Put("paris", snapshotFor("Paris"))

		time.Sleep(10 * time.Millisecond)
		c.Touch("paris")
		time.Sleep(15 * time.Millisecond)

		entry, found := c.Get("paris")
		require.True(t, found, "sweep has not run yet")
		assert.True(t, entry.IsExpired(20*time.Millisecond, time.Now()))
	})

	t.Run("sweep removes only expired entries", func(t *testing.T) {
		c := NewMemoryCache(30*time.Millisecond, DefaultMaxEntries)
		c.Put("old", snapshotFor("Old"))
		time.Sleep(35 * time.Millisecond)
		c.Put("fresh", snapshotFor("Fresh"))

		removed := c.SweepExpired()

		assert.Equal(t, 1, removed)
		_, found := c.Get("old")
		assert.False(t, found)
		_, found = c.Get("fresh")
		assert.True(t, found)
	})

	t.Run("overwrite refreshes timestamps", func(t *testing.T) {
		c := NewMemoryCache(DefaultTTL, DefaultMaxEntries)
		c.Put("rome", snapshotFor("Rome"))
		before, _ := c.Get("rome")

		time.Sleep(time.Millisecond)
		c.Put("rome", snapshotFor("Roma"))
		after, _ := c.Get("rome")

		assert.Equal(t, 1, c.Len())
		assert.Equal(t, "Roma", after.Snapshot.LocationName)
		assert.True(t, after.CreatedAt.After(before.CreatedAt))
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		c := NewMemoryCache(DefaultTTL, DefaultMaxEntries)
		c.Put("tokyo", snapshotFor("Tokyo"))

		c.Clear()
		assert.Equal(t, 0, c.Len())

		c.Clear()
		assert.Equal(t, 0, c.Len())
	})
}

func TestEntryIsExpired(t *testing.T) {
	now := time.Now()
	entry := Entry{CreatedAt: now.Add(-DefaultTTL)}
	assert.True(t, entry.IsExpired(DefaultTTL, now), "exactly at the TTL boundary counts as expired")

	entry = Entry{CreatedAt: now.Add(-DefaultTTL + time.Second)}
	assert.False(t, entry.IsExpired(DefaultTTL, now))
}

func TestKeys(t *testing.T) {
	t.Run("query keys are case and whitespace insensitive", func(t *testing.T) {
		assert.Equal(t, QueryKey("  London "), QueryKey("london"))
		assert.Equal(t, "new york", QueryKey("New York"))
	})

	t.Run("coordinate keys keep full precision", func(t *testing.T) {
		assert.Equal(t, "51.5074,-0.1278", CoordinateKey(51.5074, -0.1278))
		assert.Equal(t, "0,0", CoordinateKey(0, 0))
	})
}
