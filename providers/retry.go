package providers

import (
	"context"
	"time"

	"skycast.app/errors"
)

const (
	// DefaultMaxRetries bounds how many times a failed call is reissued.
	DefaultMaxRetries = 3
	// DefaultRetryDelay is the fixed pause between attempts.
	DefaultRetryDelay = 1000 * time.Millisecond
)

// DoWithRetry invokes op and, when the failure is a retryable server-side
// error (HTTP 5xx), waits a fixed delay and tries again until the retry
// budget is exhausted. Any other failure class propagates immediately.
// The last failure is returned unchanged once no retries remain.
func DoWithRetry[T any](ctx context.Context, op func() (T, error), retries int, delay time.Duration) (T, error) {
	result, err := op()
	if err == nil {
		return result, nil
	}

	for retries > 0 && errors.IsRetryable(err) {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			var zero T
			return zero, ctx.Err()
		case <-timer.C:
		}

		retries--
		result, err = op()
		if err == nil {
			return result, nil
		}
	}

	var zero T
	return zero, err
}
