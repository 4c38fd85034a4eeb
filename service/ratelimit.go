package service

import (
	"context"
	"sync"
	"time"
)

// Throttle drops calls arriving within a fixed window of the last admitted
// call. Used for the fetch path: coalesced calls are not queued.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewThrottle creates a throttle with the given minimum interval
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Allow reports whether a call may proceed now, and records it if so.
func (t *Throttle) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return false
	}

	t.last = now
	return true
}

// Debouncer delays execution until a quiet period has elapsed since the last
// call, superseding earlier pending calls by cancelling their context. Used
// for the suggestion path, which is a distinct policy from throttling.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	cancel context.CancelFunc
}

// NewDebouncer creates a debouncer with the given quiet period
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Run waits out the quiet period and then invokes fn. A newer Run call
// supersedes this one: its context is cancelled and context.Canceled is
// returned whether the wait or fn was in progress.
func (d *Debouncer) Run(ctx context.Context, fn func(context.Context) error) error {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.mu.Unlock()

	timer := time.NewTimer(d.delay)
	select {
	case <-runCtx.Done():
		timer.Stop()
		return runCtx.Err()
	case <-timer.C:
	}

	return fn(runCtx)
}
