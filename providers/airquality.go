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
)

var airQualityVariables = []string{
	"us_aqi",
	"carbon_monoxide",
	"nitrogen_dioxide",
	"ozone",
	"pm2_5",
	"pm10",
}

// OpenMeteoAirQualityProvider implements AirQualityProvider against the free
// Open-Meteo air quality API.
type OpenMeteoAirQualityProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenMeteoAirQualityProvider creates a new air quality client
func NewOpenMeteoAirQualityProvider(baseURL string, timeout time.Duration) *OpenMeteoAirQualityProvider {
	return &OpenMeteoAirQualityProvider{
		baseURL:    baseURL,
		httpClient: newHTTPClient(timeout),
	}
}

// FetchAirQuality retrieves current pollutant concentrations and the US AQI.
func (p *OpenMeteoAirQualityProvider) FetchAirQuality(ctx context.Context, lat, lon float64) (*AirQualityData, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	params.Set("current", strings.Join(airQualityVariables, ","))

	requestURL := fmt.Sprintf("%s/air-quality?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("build air quality request", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, networkError("air quality", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("air quality", resp.StatusCode)
	}

	var data AirQualityData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, errors.NewExternalAPIError("decode air quality response", err)
	}

	return &data, nil
}
