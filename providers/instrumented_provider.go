package providers

import (
	"context"
	"time"

	"skycast.app/errors"
	"skycast.app/metrics"
	"skycast.app/models"
)

// InstrumentedForecastProvider decorates a ForecastProvider with request,
// failure, and latency metrics.
type InstrumentedForecastProvider struct {
	wrappedProvider ForecastProvider
	metrics         *metrics.ProviderMetrics
}

// NewInstrumentedForecastProvider creates a metrics-recording forecast decorator
func NewInstrumentedForecastProvider(provider ForecastProvider, providerName string) ForecastProvider {
	return &InstrumentedForecastProvider{
		wrappedProvider: provider,
		metrics:         metrics.NewProviderMetrics(providerName),
	}
}

func (d *InstrumentedForecastProvider) FetchForecast(ctx context.Context, lat, lon float64, units models.Units) (*ForecastData, error) {
	startTime := time.Now()

	data, err := d.wrappedProvider.FetchForecast(ctx, lat, lon, units)
	d.metrics.RecordRequest(time.Since(startTime).Seconds())

	if err != nil {
		d.metrics.RecordFailure(string(errors.Classify(err).Type))
		return nil, err
	}

	return data, nil
}

// InstrumentedAirQualityProvider decorates an AirQualityProvider with metrics.
type InstrumentedAirQualityProvider struct {
	wrappedProvider AirQualityProvider
	metrics         *metrics.ProviderMetrics
}

// NewInstrumentedAirQualityProvider creates a metrics-recording air quality decorator
func NewInstrumentedAirQualityProvider(provider AirQualityProvider, providerName string) AirQualityProvider {
	return &InstrumentedAirQualityProvider{
		wrappedProvider: provider,
		metrics:         metrics.NewProviderMetrics(providerName),
	}
}

func (d *InstrumentedAirQualityProvider) FetchAirQuality(ctx context.Context, lat, lon float64) (*AirQualityData, error) {
	startTime := time.Now()

	data, err := d.wrappedProvider.FetchAirQuality(ctx, lat, lon)
	d.metrics.RecordRequest(time.Since(startTime).Seconds())

	if err != nil {
		d.metrics.RecordFailure(string(errors.Classify(err).Type))
		return nil, err
	}

	return data, nil
}
