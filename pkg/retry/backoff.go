package retry

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy defines the interface for different backoff strategies
type BackoffStrategy interface {
	// NextDelay returns the delay before the given attempt is retried
	NextDelay(attempt int) time.Duration
}

// ExponentialBackoff implements exponential backoff with jitter
type ExponentialBackoff struct {
	// BaseDelay is the initial delay duration
	BaseDelay time.Duration
	// MaxDelay is the maximum delay duration
	MaxDelay time.Duration
	// Multiplier is the factor by which delay increases
	Multiplier float64
	// JitterFactor adds randomness to avoid thundering herd (0.0 to 1.0)
	JitterFactor float64
}

// DefaultExponentialBackoff returns a backoff with the generic-failure tier
// defaults: 100ms base, 20s cap, full jitter
func DefaultExponentialBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		BaseDelay:    100 * time.Millisecond,
		MaxDelay:     20 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 1.0,
	}
}

// ThrottlingBackoff returns the throttling tier: a larger base delay so
// rate-limited calls back off harder than generic failures
func ThrottlingBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		BaseDelay:    500 * time.Millisecond,
		MaxDelay:     20 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 1.0,
	}
}

// NextDelay calculates the next delay with exponential backoff and jitter
func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := float64(eb.BaseDelay) * math.Pow(eb.Multiplier, float64(attempt-1))

	if delay > float64(eb.MaxDelay) {
		delay = float64(eb.MaxDelay)
	}

	if eb.JitterFactor > 0 {
		jitter := delay * eb.JitterFactor
		// Random value between -jitter and +jitter
		randomJitter := (rand.Float64() * 2 * jitter) - jitter
		delay += randomJitter
	}

	if delay < 0 {
		delay = 0
	}
	if delay > float64(eb.MaxDelay) {
		delay = float64(eb.MaxDelay)
	}

	return time.Duration(delay)
}

// ConstantBackoff implements constant delay backoff
type ConstantBackoff struct {
	Delay time.Duration
}

// NextDelay returns a constant delay
func (cb *ConstantBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return cb.Delay
}

// Wait waits for the specified duration or until context is cancelled
func Wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
