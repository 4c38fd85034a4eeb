package errors

import (
	"errors"
	"net/http"
)

// IsRetryable reports whether err represents a server-side failure (HTTP 5xx)
// worth retrying. Network failures and client errors are not retryable.
func IsRetryable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// Classify maps an arbitrary failure from the fetch pipeline onto the error
// taxonomy surfaced to callers. Already-classified errors pass through.
func Classify(err error) *AppError {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return NewUnknownError(err.Error(), err)
	}

	switch appErr.Type {
	case NetworkUnreachableError, RateLimitedError, LocationNotFoundError, UnknownError:
		return appErr
	}

	switch appErr.StatusCode {
	case http.StatusTooManyRequests:
		return &AppError{Type: RateLimitedError, Message: appErr.Message, Cause: appErr.Cause, StatusCode: appErr.StatusCode}
	case http.StatusNotFound:
		return &AppError{Type: LocationNotFoundError, Message: appErr.Message, Cause: appErr.Cause, StatusCode: appErr.StatusCode}
	default:
		return &AppError{Type: UnknownError, Message: appErr.Message, Cause: appErr.Cause, StatusCode: appErr.StatusCode}
	}
}
