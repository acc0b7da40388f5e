// Package ratelimit provides the rate limiting primitives used by the retry
// strategies.
//
// Two mechanisms live here:
//
// Token bucket quota:
//   - Fixed-capacity bucket drained by retry attempts and refilled by
//     successful calls
//   - Bounds the amount of retry work a client can generate while a
//     dependency is down
//   - Used by the standard and adaptive strategies
//
// Adaptive limiter:
//   - Client-side send-rate limiter that reacts to throttling responses
//   - Backs off multiplicatively when the service signals throttling and
//     recovers gradually while calls succeed
//   - Used by the adaptive strategy
//
// Usage:
//
//	// Retry quota: capacity 500, each retry costs 5 tokens
//	bucket := ratelimit.NewBucket(500)
//	if bucket.Acquire(5) {
//	    // proceed with the retry
//	}
//	bucket.Release(5) // refund on success
//
//	// Adaptive limiter
//	limiter := ratelimit.NewAdaptiveLimiter()
//	limiter.OnThrottle() // service said slow down
//	delay := limiter.Delay() // how long to hold the next send
package ratelimit
