package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"skycast.app/errors"
	"skycast.app/providers"
)

// ResolvedLocation is a canonical (latitude, longitude, displayName) triple.
// DisplayName is empty when no human-readable name could be resolved; callers
// fall back to coordinate-formatted text.
type ResolvedLocation struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// LocationResolver turns a free-text place name or a coordinate pair into a
// resolved location.
type LocationResolver struct {
	geocoder        providers.Geocoder
	reverseGeocoder providers.ReverseGeocoder
	maxRetries      int
	retryDelay      time.Duration
}

// NewLocationResolver creates a new resolver over the given geocoding clients
func NewLocationResolver(
	geocoder providers.Geocoder,
	reverseGeocoder providers.ReverseGeocoder,
	maxRetries int,
	retryDelay time.Duration,
) *LocationResolver {
	return &LocationResolver{
		geocoder:        geocoder,
		reverseGeocoder: reverseGeocoder,
		maxRetries:      maxRetries,
		retryDelay:      retryDelay,
	}
}

// ResolveByName forward-geocodes a free-text query. Zero candidates is a
// LocationNotFound failure.
func (r *LocationResolver) ResolveByName(ctx context.Context, query string) (*ResolvedLocation, error) {
	results, err := providers.DoWithRetry(ctx, func() ([]providers.GeoResult, error) {
		return r.geocoder.Search(ctx, query, 1)
	}, r.maxRetries, r.retryDelay)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, errors.NewLocationNotFoundError("no results for " + strings.TrimSpace(query))
	}

	best := results[0]
	return &ResolvedLocation{
		Lat:         best.Latitude,
		Lon:         best.Longitude,
		DisplayName: joinNameParts(best.Name, best.Admin1, best.Country),
	}, nil
}

// ResolveByCoordinates reverse-geocodes a coordinate pair. The lookup is best
// effort: any failure is swallowed and the display name left unresolved,
// since a name is not required for forecasting.
func (r *LocationResolver) ResolveByCoordinates(ctx context.Context, lat, lon float64) *ResolvedLocation {
	resolved := &ResolvedLocation{Lat: lat, Lon: lon}

	place, err := r.reverseGeocoder.Lookup(ctx, lat, lon)
	if err != nil {
		slog.Debug("reverse geocoding failed", "lat", lat, "lon", lon, "error", err)
		return resolved
	}

	name := place.City
	if name == "" {
		name = place.Locality
	}
	if name == "" {
		return resolved
	}

	resolved.DisplayName = joinNameParts(name, place.Subdivision, place.Country)
	return resolved
}

// joinNameParts concatenates the non-empty parts with comma separators.
func joinNameParts(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ", ")
}
