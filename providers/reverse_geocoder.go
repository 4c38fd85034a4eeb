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

// BigDataCloudReverseGeocoder implements ReverseGeocoder against the free
// BigDataCloud client API. Callers treat its failures as non-fatal: a place
// name is a nice-to-have, not required for forecasting.
type BigDataCloudReverseGeocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewBigDataCloudReverseGeocoder creates a new reverse-geocoding client
func NewBigDataCloudReverseGeocoder(baseURL string, timeout time.Duration) *BigDataCloudReverseGeocoder {
	return &BigDataCloudReverseGeocoder{
		baseURL:    baseURL,
		httpClient: newHTTPClient(timeout),
	}
}

// Lookup resolves the coordinate pair into a place name. One attempt, no
// retries.
func (r *BigDataCloudReverseGeocoder) Lookup(ctx context.Context, lat, lon float64) (*PlaceName, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	params.Set("localityLanguage", "en")

	requestURL := fmt.Sprintf("%s/reverse-geocode-client?%s", r.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("build reverse geocoding request", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, networkError("reverse geocoding", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("reverse geocoding", resp.StatusCode)
	}

	var place PlaceName
	if err := json.NewDecoder(resp.Body).Decode(&place); err != nil {
		return nil, errors.NewExternalAPIError("decode reverse geocoding response", err)
	}

	return &place, nil
}
