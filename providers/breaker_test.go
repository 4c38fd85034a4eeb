package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "skycast.app/errors"
	"skycast.app/models"
)

type flakyForecastProvider struct {
	err   error
	calls int
}

func (f *flakyForecastProvider) FetchForecast(ctx context.Context, lat, lon float64, units models.Units) (*ForecastData, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &ForecastData{}, nil
}

func TestBreakerForecastProvider(t *testing.T) {
	t.Run("passes successes through", func(t *testing.T) {
		inner := &flakyForecastProvider{}
		provider := NewBreakerForecastProvider(inner)

		data, err := provider.FetchForecast(context.Background(), 51.5, -0.12, models.UnitsMetric)

		require.NoError(t, err)
		assert.NotNil(t, data)
	})

	t.Run("opens after consecutive failures and fails fast", func(t *testing.T) {
		inner := &flakyForecastProvider{err: apperrors.NewUpstreamStatusError("boom", 500)}
		provider := NewBreakerForecastProvider(inner)

		for i := 0; i < 6; i++ {
			_, err := provider.FetchForecast(context.Background(), 51.5, -0.12, models.UnitsMetric)
			require.Error(t, err)
		}

		callsBefore := inner.calls
		_, err := provider.FetchForecast(context.Background(), 51.5, -0.12, models.UnitsMetric)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ExternalAPIError, appErr.Type)
		assert.Equal(t, callsBefore, inner.calls, "open breaker must not reach the upstream")
	})
}

func TestBreakerAirQualityProvider(t *testing.T) {
	inner := &fakeAirQuality{}
	provider := NewBreakerAirQualityProvider(inner)

	data, err := provider.FetchAirQuality(context.Background(), 51.5, -0.12)

	require.NoError(t, err)
	assert.NotNil(t, data)
}

type fakeAirQuality struct{}

func (f *fakeAirQuality) FetchAirQuality(ctx context.Context, lat, lon float64) (*AirQualityData, error) {
	return &AirQualityData{}, nil
}
