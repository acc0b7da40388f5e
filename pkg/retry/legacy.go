package retry

import (
	"time"

	"retrykit/pkg/ratelimit"
)

const legacyMaxAttempts = 4

// Legacy mirrors the pre-standard retry behavior: one extra attempt and a
// separate, heavier backoff tier for throttled calls. Throttled retries do
// not consume the token quota, matching the old semantics where throttling
// was considered a signal to slow down rather than a failure to budget.
type Legacy struct {
	maxAttempts     int
	retryOn         Condition
	throttling      Condition
	backoff         BackoffStrategy
	throttleBackoff BackoffStrategy
	quota           *ratelimit.Bucket
	retryCost       float64
}

func (s *Legacy) ShouldRetry(err error) bool {
	if !s.retryOn(err) {
		return false
	}
	if s.throttling(err) {
		return true
	}
	return s.quota.Acquire(s.retryCost)
}

func (s *Legacy) IsThrottling(err error) bool {
	return s.throttling(err)
}

func (s *Legacy) Delay(attempt int, err error) time.Duration {
	if s.throttling(err) {
		return s.throttleBackoff.NextDelay(attempt)
	}
	return s.backoff.NextDelay(attempt)
}

func (s *Legacy) MaxAttempts() int {
	return s.maxAttempts
}

func (s *Legacy) RecordSuccess() {
	s.quota.Release(s.retryCost)
}

// LegacyBuilder builds Legacy strategies
type LegacyBuilder struct {
	baseBuilder
	backoff         BackoffStrategy
	throttleBackoff BackoffStrategy
	quota           *ratelimit.Bucket
	retryCost       float64
}

// NewLegacyBuilder returns a builder with the variant's native defaults and
// no retry conditions registered
func NewLegacyBuilder() *LegacyBuilder {
	return &LegacyBuilder{
		baseBuilder:     newBaseBuilder(legacyMaxAttempts),
		backoff:         DefaultExponentialBackoff(),
		throttleBackoff: ThrottlingBackoff(),
		quota:           ratelimit.NewBucket(quotaCapacity),
		retryCost:       retryCost,
	}
}

// WithBackoff replaces the generic-failure backoff tier
func (b *LegacyBuilder) WithBackoff(backoff BackoffStrategy) *LegacyBuilder {
	if backoff != nil {
		b.backoff = backoff
	}
	return b
}

// WithThrottleBackoff replaces the throttling backoff tier
func (b *LegacyBuilder) WithThrottleBackoff(backoff BackoffStrategy) *LegacyBuilder {
	if backoff != nil {
		b.throttleBackoff = backoff
	}
	return b
}

// Build finalizes the builder into an immutable strategy instance
func (b *LegacyBuilder) Build() *Legacy {
	return &Legacy{
		maxAttempts:     b.maxAttempts,
		retryOn:         b.retryCondition(),
		throttling:      b.throttling,
		backoff:         b.backoff,
		throttleBackoff: b.throttleBackoff,
		quota:           b.quota,
		retryCost:       b.retryCost,
	}
}
