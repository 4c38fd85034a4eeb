package providers

import (
	"context"
	"log/slog"
	"time"

	"skycast.app/models"
)

// LoggingForecastProvider logs every forecast request with its outcome and
// duration.
type LoggingForecastProvider struct {
	wrappedProvider ForecastProvider
	providerName    string
}

// NewLoggingForecastProvider creates a logging decorator for forecast calls
func NewLoggingForecastProvider(provider ForecastProvider, providerName string) ForecastProvider {
	return &LoggingForecastProvider{
		wrappedProvider: provider,
		providerName:    providerName,
	}
}

func (d *LoggingForecastProvider) FetchForecast(ctx context.Context, lat, lon float64, units models.Units) (*ForecastData, error) {
	startTime := time.Now()

	data, err := d.wrappedProvider.FetchForecast(ctx, lat, lon, units)
	duration := time.Since(startTime)

	if err != nil {
		slog.Error("forecast request failed", "provider", d.providerName, "lat", lat, "lon", lon, "duration", duration, "error", err)
		return nil, err
	}

	slog.Info("forecast request", "provider", d.providerName, "lat", lat, "lon", lon, "duration", duration)
	return data, nil
}

// LoggingGeocoder logs every forward-geocoding request.
type LoggingGeocoder struct {
	wrappedGeocoder Geocoder
	providerName    string
}

// NewLoggingGeocoder creates a logging decorator for geocoding calls
func NewLoggingGeocoder(geocoder Geocoder, providerName string) Geocoder {
	return &LoggingGeocoder{
		wrappedGeocoder: geocoder,
		providerName:    providerName,
	}
}

func (d *LoggingGeocoder) Search(ctx context.Context, query string, count int) ([]GeoResult, error) {
	startTime := time.Now()

	results, err := d.wrappedGeocoder.Search(ctx, query, count)
	duration := time.Since(startTime)

	if err != nil {
		slog.Error("geocoding request failed", "provider", d.providerName, "query", query, "duration", duration, "error", err)
		return nil, err
	}

	slog.Info("geocoding request", "provider", d.providerName, "query", query, "results", len(results), "duration", duration)
	return results, nil
}
