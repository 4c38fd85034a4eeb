package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "skycast.app/errors"
	"skycast.app/providers"
)

type fakeGeocoder struct {
	results []providers.GeoResult
	err     error
	calls   int
}

func (f *fakeGeocoder) Search(ctx context.Context, query string, count int) ([]providers.GeoResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeReverseGeocoder struct {
	place *providers.PlaceName
	err   error
}

func (f *fakeReverseGeocoder) Lookup(ctx context.Context, lat, lon float64) (*providers.PlaceName, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.place, nil
}

func TestResolveByName(t *testing.T) {
	t.Run("joins name, region and country", func(t *testing.T) {
		geocoder := &fakeGeocoder{results: []providers.GeoResult{
			{Name: "Paris", Latitude: 48.85341, Longitude: 2.3488, Admin1: "Ile-de-France", Country: "France"},
		}}
		resolver := NewLocationResolver(geocoder, &fakeReverseGeocoder{}, 0, time.Millisecond)

		resolved, err := resolver.ResolveByName(context.Background(), "paris")

		require.NoError(t, err)
		assert.Equal(t, "Paris, Ile-de-France, France", resolved.DisplayName)
		assert.InDelta(t, 48.85341, resolved.Lat, 0.0001)
		assert.InDelta(t, 2.3488, resolved.Lon, 0.0001)
	})

	t.Run("skips empty name parts", func(t *testing.T) {
		geocoder := &fakeGeocoder{results: []providers.GeoResult{
			{Name: "Singapore", Country: "Singapore"},
		}}
		resolver := NewLocationResolver(geocoder, &fakeReverseGeocoder{}, 0, time.Millisecond)

		resolved, err := resolver.ResolveByName(context.Background(), "singapore")

		require.NoError(t, err)
		assert.Equal(t, "Singapore, Singapore", resolved.DisplayName)
	})

	t.Run("no candidates is location not found", func(t *testing.T) {
		resolver := NewLocationResolver(&fakeGeocoder{}, &fakeReverseGeocoder{}, 0, time.Millisecond)

		_, err := resolver.ResolveByName(context.Background(), "xzzyq")

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.LocationNotFoundError, appErr.Type)
	})

	t.Run("retries server failures", func(t *testing.T) {
		geocoder := &fakeGeocoder{err: apperrors.NewUpstreamStatusError("boom", 502)}
		resolver := NewLocationResolver(geocoder, &fakeReverseGeocoder{}, 2, time.Millisecond)

		_, err := resolver.ResolveByName(context.Background(), "paris")

		require.Error(t, err)
		assert.Equal(t, 3, geocoder.calls)
	})
}

func TestResolveByCoordinates(t *testing.T) {
	t.Run("builds a display name from the place", func(t *testing.T) {
		reverse := &fakeReverseGeocoder{place: &providers.PlaceName{
			City:        "London",
			Subdivision: "England",
			Country:     "United Kingdom",
		}}
		resolver := NewLocationResolver(&fakeGeocoder{}, reverse, 0, time.Millisecond)

		resolved := resolver.ResolveByCoordinates(context.Background(), 51.5074, -0.1278)

		assert.Equal(t, "London, England, United Kingdom", resolved.DisplayName)
		assert.Equal(t, 51.5074, resolved.Lat)
	})

	t.Run("falls back to locality when city is empty", func(t *testing.T) {
		reverse := &fakeReverseGeocoder{place: &providers.PlaceName{
			Locality: "Soho",
			Country:  "United Kingdom",
		}}
		resolver := NewLocationResolver(&fakeGeocoder{}, reverse, 0, time.Millisecond)

		resolved := resolver.ResolveByCoordinates(context.Background(), 51.51, -0.13)

		assert.Equal(t, "Soho, United Kingdom", resolved.DisplayName)
	})

	t.Run("lookup failure leaves the name unresolved", func(t *testing.T) {
		reverse := &fakeReverseGeocoder{err: apperrors.NewNetworkUnreachableError("down", nil)}
		resolver := NewLocationResolver(&fakeGeocoder{}, reverse, 0, time.Millisecond)

		resolved := resolver.ResolveByCoordinates(context.Background(), 51.5074, -0.1278)

		assert.Empty(t, resolved.DisplayName)
		assert.Equal(t, 51.5074, resolved.Lat)
	})

	t.Run("nameless place leaves the name unresolved", func(t *testing.T) {
		reverse := &fakeReverseGeocoder{place: &providers.PlaceName{Country: "France"}}
		resolver := NewLocationResolver(&fakeGeocoder{}, reverse, 0, time.Millisecond)

		resolved := resolver.ResolveByCoordinates(context.Background(), 48.85, 2.35)

		assert.Empty(t, resolved.DisplayName)
	})
}
