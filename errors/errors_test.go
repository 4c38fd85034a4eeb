package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("formats type and message", func(t *testing.T) {
		err := NewValidationError("query must not be empty")
		assert.Equal(t, "VALIDATION_ERROR: query must not be empty", err.Error())
	})

	t.Run("formats the cause when present", func(t *testing.T) {
		cause := stderrors.New("dial tcp: connection refused")
		err := NewNetworkUnreachableError("geocoding request failed", cause)

		assert.Contains(t, err.Error(), "NETWORK_UNREACHABLE")
		assert.Contains(t, err.Error(), "connection refused")
		assert.ErrorIs(t, err, cause)
	})
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"internal server error", NewUpstreamStatusError("boom", 500), true},
		{"bad gateway", NewUpstreamStatusError("boom", 502), true},
		{"not found", NewUpstreamStatusError("missing", 404), false},
		{"rate limited", NewRateLimitedError("slow down"), false},
		{"network failure", NewNetworkUnreachableError("down", nil), false},
		{"plain error", stderrors.New("boom"), false},
		{"wrapped server error", fmt.Errorf("fetch: %w", NewUpstreamStatusError("boom", 503)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Run("passes pipeline errors through", func(t *testing.T) {
		original := NewLocationNotFoundError("no matches")
		classified := Classify(original)
		assert.Same(t, original, classified)
	})

	t.Run("maps upstream 429 to rate limited", func(t *testing.T) {
		classified := Classify(NewUpstreamStatusError("too many requests", 429))
		assert.Equal(t, RateLimitedError, classified.Type)
	})

	t.Run("maps upstream 404 to location not found", func(t *testing.T) {
		classified := Classify(NewUpstreamStatusError("missing", 404))
		assert.Equal(t, LocationNotFoundError, classified.Type)
	})

	t.Run("maps upstream 5xx to unknown", func(t *testing.T) {
		classified := Classify(NewUpstreamStatusError("boom", 500))
		assert.Equal(t, UnknownError, classified.Type)
		assert.Equal(t, 500, classified.StatusCode)
	})

	t.Run("wraps arbitrary errors as unknown", func(t *testing.T) {
		cause := stderrors.New("json: unexpected end of input")
		classified := Classify(cause)

		require.Equal(t, UnknownError, classified.Type)
		assert.ErrorIs(t, classified, cause)
	})
}
