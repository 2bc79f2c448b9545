// Package ratelimit paces outbound requests to the case-management API.
//
// Every metadata call and every binary download waits on the same limiter,
// so the configured delay is a floor on request cadence for the whole run.
//
// Available Implementations:
//
// Fixed Delay ("sleep"):
//   - Sleeps for the full delay before every call
//   - Default; matches the public API's expectation of a polite client
//
// Interval ("interval"):
//   - Token bucket with burst 1 refilled every delay
//   - Calls are at least delay apart, but a caller that is already slower
//     than the delay does not sleep again
//
// Usage:
//
//	limiter := ratelimit.New(cfg.RateLimit.Strategy, cfg.RateLimit.Delay)
//
//	if err := limiter.Wait(ctx); err != nil {
//	    return err // context cancelled
//	}
//	// Proceed with request
package ratelimit
