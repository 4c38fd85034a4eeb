package providers

import (
	"fmt"
	"net/http"
	"time"

	"skycast.app/errors"
)

const defaultRequestTimeout = 10 * time.Second

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &http.Client{Timeout: timeout}
}

// statusError converts a non-200 upstream status into an application error
// carrying the status code so the retry wrapper and the classifier can act
// on it.
func statusError(service string, statusCode int) *errors.AppError {
	switch statusCode {
	case http.StatusNotFound:
		return errors.NewUpstreamStatusError(fmt.Sprintf("%s: resource not found", service), statusCode)
	case http.StatusTooManyRequests:
		return errors.NewRateLimitedError(fmt.Sprintf("%s: rate limit exceeded", service))
	default:
		return errors.NewUpstreamStatusError(fmt.Sprintf("%s: HTTP %d error", service, statusCode), statusCode)
	}
}

func networkError(service string, cause error) *errors.AppError {
	return errors.NewNetworkUnreachableError(fmt.Sprintf("%s: request failed", service), cause)
}
