package cache

import (
	"strconv"
	"strings"
)

// QueryKey derives the cache fingerprint for a free-text location query.
func QueryKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// CoordinateKey derives the cache fingerprint for a coordinate query. Full
// numeric precision, no rounding: a snapshot written under coordinates read
// back from it must hit the same key.
func CoordinateKey(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}
