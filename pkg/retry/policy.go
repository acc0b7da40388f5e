package retry

import (
	"context"
	"time"

	"retrykit/pkg/logger"
	"retrykit/pkg/ratelimit"
)

// Policy is the older rate-limited retry policy object. It predates the
// strategy builders and is kept because the adaptive compatibility mode is
// defined in terms of it; PolicyAdapter lifts it into the Strategy
// interface.
type Policy struct {
	// MaxAttempts is the attempt budget, counting the first try
	MaxAttempts int
	// Backoff computes the delay between attempts
	Backoff BackoffStrategy
	// RetryIf determines if an error should be retried
	RetryIf Condition
	// OnRetry is called before each retry attempt
	OnRetry func(attempt int, err error, delay time.Duration)
	// Limiter paces calls after throttling has been observed
	Limiter *ratelimit.AdaptiveLimiter
	// Logger for retry attempts
	Logger logger.Logger
}

// RateLimitedPolicy returns the policy the adaptive compatibility mode
// wraps: generic retry conditions, exponential backoff and a client-side
// rate limiter
func RateLimitedPolicy() *Policy {
	return &Policy{
		MaxAttempts: standardMaxAttempts,
		Backoff:     DefaultExponentialBackoff(),
		RetryIf:     DefaultRetryCondition(),
		Limiter:     ratelimit.NewAdaptiveLimiter(),
		Logger:      logger.GetLogger(),
	}
}

// Do executes op with this policy's retry behavior
func (p *Policy) Do(ctx context.Context, op func() error) error {
	log := p.Logger
	if log == nil {
		log = logger.GetLogger()
	}
	return DoWithLogger(ctx, NewPolicyAdapter(p), op, log)
}
