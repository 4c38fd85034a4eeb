package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skycast.app/errors"
	"skycast.app/models"
)

const (
	forecastDays  = 7
	forecastHours = 24
)

var (
	currentVariables = []string{
		"temperature_2m",
		"relative_humidity_2m",
		"apparent_temperature",
		"surface_pressure",
		"wind_speed_10m",
		"weather_code",
	}
	hourlyVariables = []string{
		"temperature_2m",
		"weather_code",
	}
	dailyVariables = []string{
		"weather_code",
		"temperature_2m_max",
		"temperature_2m_min",
		"sunrise",
		"sunset",
		"precipitation_probability_max",
		"wind_speed_10m_max",
		"relative_humidity_2m_mean",
	}
)

// OpenMeteoForecastProvider implements ForecastProvider against the free
// Open-Meteo forecast API.
type OpenMeteoForecastProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenMeteoForecastProvider creates a new forecast client
func NewOpenMeteoForecastProvider(baseURL string, timeout time.Duration) *OpenMeteoForecastProvider {
	return &OpenMeteoForecastProvider{
		baseURL:    baseURL,
		httpClient: newHTTPClient(timeout),
	}
}

// FetchForecast retrieves current conditions plus 24h hourly and 7-day daily
// arrays, with unit parameters selected per preference. Hourly data starts at
// the current hour, so the first 24 entries cover the next day.
func (p *OpenMeteoForecastProvider) FetchForecast(ctx context.Context, lat, lon float64, units models.Units) (*ForecastData, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	params.Set("current", strings.Join(currentVariables, ","))
	params.Set("hourly", strings.Join(hourlyVariables, ","))
	params.Set("daily", strings.Join(dailyVariables, ","))
	params.Set("forecast_days", fmt.Sprintf("%d", forecastDays))
	params.Set("forecast_hours", fmt.Sprintf("%d", forecastHours))
	params.Set("timezone", "auto")

	if units == models.UnitsImperial {
		params.Set("temperature_unit", "fahrenheit")
		params.Set("wind_speed_unit", "mph")
		params.Set("precipitation_unit", "inch")
	}

	requestURL := fmt.Sprintf("%s/forecast?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("build forecast request", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, networkError("forecast", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("forecast", resp.StatusCode)
	}

	var data ForecastData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, errors.NewExternalAPIError("decode forecast response", err)
	}

	return &data, nil
}
