package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"skycast.app/errors"
)

// OpenMeteoGeocoder implements Geocoder against the free Open-Meteo
// geocoding API (no key required).
type OpenMeteoGeocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenMeteoGeocoder creates a new forward-geocoding client
func NewOpenMeteoGeocoder(baseURL string, timeout time.Duration) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{
		baseURL:    baseURL,
		httpClient: newHTTPClient(timeout),
	}
}

type geocodingResponse struct {
	Results []GeoResult `json:"results"`
}

// Search returns up to count candidates for the query, best match first.
func (g *OpenMeteoGeocoder) Search(ctx context.Context, query string, count int) ([]GeoResult, error) {
	if count < 1 {
		count = 1
	}

	params := url.Values{}
	params.Set("name", query)
	params.Set("count", fmt.Sprintf("%d", count))
	params.Set("language", "en")
	params.Set("format", "json")

	requestURL := fmt.Sprintf("%s/search?%s", g.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("build geocoding request", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, networkError("geocoding", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("geocoding", resp.StatusCode)
	}

	var apiResponse geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, errors.NewExternalAPIError("decode geocoding response", err)
	}

	return apiResponse.Results, nil
}
