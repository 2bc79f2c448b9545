package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// StrategySleep waits the full delay before every call
	StrategySleep = "sleep"
	// StrategyInterval enforces a minimum gap between consecutive calls
	StrategyInterval = "interval"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	// Wait blocks until the next request may be issued or ctx is done
	Wait(ctx context.Context) error
}

// New returns the limiter for the named strategy. A zero delay never blocks.
func New(strategy string, delay time.Duration) Limiter {
	if delay <= 0 {
		return Unlimited{}
	}
	if strategy == StrategyInterval {
		return NewInterval(delay)
	}
	return NewFixedDelay(delay)
}

// FixedDelay sleeps for a constant delay before each request
type FixedDelay struct {
	delay time.Duration
	mu    sync.Mutex
	calls int
}

// NewFixedDelay creates a new fixed delay limiter
func NewFixedDelay(delay time.Duration) *FixedDelay {
	return &FixedDelay{delay: delay}
}

// Wait blocks for the configured delay
func (f *FixedDelay) Wait(ctx context.Context) error {
	// Serialise waiters so the delay stays a global floor
	f.mu.Lock()
	defer f.mu.Unlock()

	timer := time.NewTimer(f.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		f.calls++
		return nil
	}
}

// Calls returns how many waits have completed
func (f *FixedDelay) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Interval guarantees consecutive requests are at least delay apart
type Interval struct {
	bucket *rate.Limiter
}

// NewInterval creates an interval limiter with burst 1
func NewInterval(delay time.Duration) *Interval {
	return &Interval{bucket: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until a token is available
func (i *Interval) Wait(ctx context.Context) error {
	return i.bucket.Wait(ctx)
}

// Unlimited never blocks; used when the delay is zero
type Unlimited struct{}

// Wait returns immediately unless ctx is already done
func (Unlimited) Wait(ctx context.Context) error {
	return ctx.Err()
}
