package providers

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"skycast.app/errors"
	"skycast.app/models"
)

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

func breakerError(service string, err error) error {
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return errors.NewExternalAPIError(service+": circuit breaker open", err)
	}
	return err
}

// BreakerForecastProvider wraps a ForecastProvider with a circuit breaker so
// a flapping upstream fails fast instead of burning the retry budget.
type BreakerForecastProvider struct {
	wrappedProvider ForecastProvider
	breaker         *gobreaker.CircuitBreaker
}

// NewBreakerForecastProvider creates a circuit-breaking forecast decorator
func NewBreakerForecastProvider(provider ForecastProvider) ForecastProvider {
	return &BreakerForecastProvider{
		wrappedProvider: provider,
		breaker:         newBreaker("forecast"),
	}
}

func (d *BreakerForecastProvider) FetchForecast(ctx context.Context, lat, lon float64, units models.Units) (*ForecastData, error) {
	result, err := d.breaker.Execute(func() (interface{}, error) {
		return d.wrappedProvider.FetchForecast(ctx, lat, lon, units)
	})
	if err != nil {
		return nil, breakerError("forecast", err)
	}
	return result.(*ForecastData), nil
}

// BreakerAirQualityProvider wraps an AirQualityProvider with a circuit breaker.
type BreakerAirQualityProvider struct {
	wrappedProvider AirQualityProvider
	breaker         *gobreaker.CircuitBreaker
}

// NewBreakerAirQualityProvider creates a circuit-breaking air quality decorator
func NewBreakerAirQualityProvider(provider AirQualityProvider) AirQualityProvider {
	return &BreakerAirQualityProvider{
		wrappedProvider: provider,
		breaker:         newBreaker("air-quality"),
	}
}

func (d *BreakerAirQualityProvider) FetchAirQuality(ctx context.Context, lat, lon float64) (*AirQualityData, error) {
	result, err := d.breaker.Execute(func() (interface{}, error) {
		return d.wrappedProvider.FetchAirQuality(ctx, lat, lon)
	})
	if err != nil {
		return nil, breakerError("air quality", err)
	}
	return result.(*AirQualityData), nil
}
