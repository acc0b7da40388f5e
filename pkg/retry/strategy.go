package retry

import (
	"context"
	"fmt"
	"time"

	"retrykit/pkg/logger"
)

// Strategy is an immutable retry policy produced by a builder's Build step.
// Instances are safe for concurrent reuse across operations; all mutable
// state (token quotas, rate limiters) is internally synchronized.
type Strategy interface {
	// ShouldRetry decides whether the failed attempt is retried. It may
	// consume retry quota, so call it once per failure.
	ShouldRetry(err error) bool
	// IsThrottling reports whether the failure is classified as
	// throttling, which selects the heavier backoff tier.
	IsThrottling(err error) bool
	// Delay returns how long to wait before the given attempt is retried.
	Delay(attempt int, err error) time.Duration
	// MaxAttempts returns the attempt budget, counting the first try.
	MaxAttempts() int
	// RecordSuccess reports a successful call so quotas can be refunded
	// and adaptive rates can recover.
	RecordSuccess()
}

// Do executes op, retrying according to the strategy. It returns nil on
// success, the last error when the strategy declines to retry, and a
// wrapped error when the attempt budget is exhausted or ctx is cancelled.
func Do(ctx context.Context, s Strategy, op func() error) error {
	return DoWithLogger(ctx, s, op, logger.GetLogger())
}

// DoWithLogger is Do with an explicit logger
func DoWithLogger(ctx context.Context, s Strategy, op func() error, log logger.Logger) error {
	var lastErr error

	for attempt := 1; ; attempt++ {
		err := op()
		if err == nil {
			s.RecordSuccess()
			if attempt > 1 {
				log.DebugWithFields("operation succeeded after retry", map[string]interface{}{
					"attempt": attempt,
				})
			}
			return nil
		}

		lastErr = err

		if attempt >= s.MaxAttempts() {
			log.ErrorWithFields("max retry attempts exceeded", map[string]interface{}{
				"attempts":   attempt,
				"last_error": lastErr.Error(),
			})
			return fmt.Errorf("max retry attempts (%d) exceeded: %w", s.MaxAttempts(), lastErr)
		}

		if !s.ShouldRetry(err) {
			log.DebugWithFields("error is not retryable", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}

		delay := s.Delay(attempt, err)

		log.WarnWithFields("retrying operation", map[string]interface{}{
			"attempt":      attempt,
			"error":        err.Error(),
			"delay_ms":     delay.Milliseconds(),
			"max_attempts": s.MaxAttempts(),
			"throttling":   s.IsThrottling(err),
		})

		if werr := Wait(ctx, delay); werr != nil {
			return fmt.Errorf("retry cancelled: %w", werr)
		}
	}
}
