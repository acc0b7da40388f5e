package retry

import (
	"time"

	"retrykit/pkg/ratelimit"
)

// Native defaults for the standard strategy.
const (
	standardMaxAttempts = 3
	quotaCapacity       = 500
	retryCost           = 5
)

// Standard is the default retry strategy: a capped number of attempts,
// jittered exponential backoff and a token quota that bounds how much retry
// work the client generates while a dependency is unhealthy.
type Standard struct {
	maxAttempts int
	retryOn     Condition
	throttling  Condition
	backoff     BackoffStrategy
	quota       *ratelimit.Bucket
	retryCost   float64
}

func (s *Standard) ShouldRetry(err error) bool {
	if !s.retryOn(err) {
		return false
	}
	// A retry spends quota; the refund happens in RecordSuccess.
	return s.quota.Acquire(s.retryCost)
}

func (s *Standard) IsThrottling(err error) bool {
	return s.throttling(err)
}

func (s *Standard) Delay(attempt int, err error) time.Duration {
	return s.backoff.NextDelay(attempt)
}

func (s *Standard) MaxAttempts() int {
	return s.maxAttempts
}

func (s *Standard) RecordSuccess() {
	s.quota.Release(s.retryCost)
}

// StandardBuilder builds Standard strategies. The zero builder is not
// usable; create one through NewStandardBuilder.
type StandardBuilder struct {
	baseBuilder
	backoff   BackoffStrategy
	quota     *ratelimit.Bucket
	retryCost float64
}

// NewStandardBuilder returns a builder with the variant's native defaults
// and no retry conditions registered
func NewStandardBuilder() *StandardBuilder {
	return &StandardBuilder{
		baseBuilder: newBaseBuilder(standardMaxAttempts),
		backoff:     DefaultExponentialBackoff(),
		quota:       ratelimit.NewBucket(quotaCapacity),
		retryCost:   retryCost,
	}
}

// WithBackoff replaces the builder's backoff strategy
func (b *StandardBuilder) WithBackoff(backoff BackoffStrategy) *StandardBuilder {
	if backoff != nil {
		b.backoff = backoff
	}
	return b
}

// WithQuota replaces the retry token quota
func (b *StandardBuilder) WithQuota(quota *ratelimit.Bucket, cost float64) *StandardBuilder {
	if quota != nil {
		b.quota = quota
	}
	if cost >= 0 {
		b.retryCost = cost
	}
	return b
}

// Build finalizes the builder into an immutable strategy instance
func (b *StandardBuilder) Build() *Standard {
	return &Standard{
		maxAttempts: b.maxAttempts,
		retryOn:     b.retryCondition(),
		throttling:  b.throttling,
		backoff:     b.backoff,
		quota:       b.quota,
		retryCost:   b.retryCost,
	}
}
