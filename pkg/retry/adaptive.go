package retry

import (
	"time"

	"retrykit/pkg/ratelimit"
)

// Adaptive is the current adaptive strategy: standard retry behavior plus a
// client-side send-rate limiter that paces calls after the service signals
// throttling.
type Adaptive struct {
	maxAttempts int
	retryOn     Condition
	throttling  Condition
	backoff     BackoffStrategy
	quota       *ratelimit.Bucket
	retryCost   float64
	limiter     *ratelimit.AdaptiveLimiter
}

func (s *Adaptive) ShouldRetry(err error) bool {
	if s.throttling(err) {
		s.limiter.OnThrottle()
	}
	if !s.retryOn(err) {
		return false
	}
	return s.quota.Acquire(s.retryCost)
}

func (s *Adaptive) IsThrottling(err error) bool {
	return s.throttling(err)
}

func (s *Adaptive) Delay(attempt int, err error) time.Duration {
	delay := s.backoff.NextDelay(attempt)
	if pace := s.limiter.Delay(); pace > delay {
		delay = pace
	}
	return delay
}

func (s *Adaptive) MaxAttempts() int {
	return s.maxAttempts
}

func (s *Adaptive) RecordSuccess() {
	s.quota.Release(s.retryCost)
	s.limiter.OnSuccess()
}

// AdaptiveBuilder builds Adaptive strategies
type AdaptiveBuilder struct {
	baseBuilder
	backoff   BackoffStrategy
	quota     *ratelimit.Bucket
	retryCost float64
	limiter   *ratelimit.AdaptiveLimiter
}

// NewAdaptiveBuilder returns a builder with the variant's native defaults
// and no retry conditions registered
func NewAdaptiveBuilder() *AdaptiveBuilder {
	return &AdaptiveBuilder{
		baseBuilder: newBaseBuilder(standardMaxAttempts),
		backoff:     DefaultExponentialBackoff(),
		quota:       ratelimit.NewBucket(quotaCapacity),
		retryCost:   retryCost,
		limiter:     ratelimit.NewAdaptiveLimiter(),
	}
}

// WithBackoff replaces the builder's backoff strategy
func (b *AdaptiveBuilder) WithBackoff(backoff BackoffStrategy) *AdaptiveBuilder {
	if backoff != nil {
		b.backoff = backoff
	}
	return b
}

// WithLimiter replaces the client-side rate limiter
func (b *AdaptiveBuilder) WithLimiter(limiter *ratelimit.AdaptiveLimiter) *AdaptiveBuilder {
	if limiter != nil {
		b.limiter = limiter
	}
	return b
}

// Build finalizes the builder into an immutable strategy instance
func (b *AdaptiveBuilder) Build() *Adaptive {
	return &Adaptive{
		maxAttempts: b.maxAttempts,
		retryOn:     b.retryCondition(),
		throttling:  b.throttling,
		backoff:     b.backoff,
		quota:       b.quota,
		retryCost:   b.retryCost,
		limiter:     b.limiter,
	}
}
