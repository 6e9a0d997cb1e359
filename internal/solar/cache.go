package solar

import (
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/oshokin/shabbat-check/internal/domain/zmanim"
)

// Calculator computes both events for the calendar day of an instant.
type Calculator interface {
	Compute(coord zmanim.Coordinate, at time.Time) Times
}

const (
	// DefaultCacheSize bounds the number of memoized minutes.
	DefaultCacheSize = 4096
	// cacheTTL drops entries nobody asks for again.
	cacheTTL = 2 * time.Hour
)

// cacheKey identifies one computation.
type cacheKey struct {
	// coord is the observer.
	coord zmanim.Coordinate
	// minute is the Unix time of the start of the minute.
	minute int64
	// offset is the UTC offset in seconds used for the local clock.
	offset int
}

// Cache memoizes a Calculator per coordinate, UTC offset and minute.
// Instants are truncated to the minute before they reach the wrapped
// calculator, so a hit returns exactly what a miss would have computed.
type Cache struct {
	// next computes on a miss.
	next Calculator
	// entries holds computed times.
	entries *otter.Cache[cacheKey, Times]
}

// NewCache wraps next with a bounded cache of size entries.
func NewCache(next Calculator, size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}

	return &Cache{
		next: next,
		entries: otter.Must(&otter.Options[cacheKey, Times]{
			MaximumSize:      size,
			ExpiryCalculator: otter.ExpiryWriting[cacheKey, Times](cacheTTL),
		}),
	}
}

// Compute returns the memoized times for the minute of at.
func (c *Cache) Compute(coord zmanim.Coordinate, at time.Time) Times {
	at = at.Truncate(time.Minute)
	_, offset := at.Zone()

	key := cacheKey{coord: coord, minute: at.Unix(), offset: offset}

	if times, ok := c.entries.GetIfPresent(key); ok {
		return times
	}

	times := c.next.Compute(coord, at)
	c.entries.Set(key, times)

	return times
}
