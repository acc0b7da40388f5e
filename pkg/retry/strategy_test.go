package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"retrykit/pkg/failure"
	"retrykit/pkg/logger"
	"retrykit/pkg/ratelimit"
)

func quickBuilder() *StandardBuilder {
	b := NewStandardBuilder()
	b.WithBackoff(&ConstantBackoff{Delay: time.Millisecond})
	return Configure(b)
}

func TestDoSucceedsAfterRetries(t *testing.T) {
	s := quickBuilder().Build()
	log := logger.NewTestLogger()

	attempts := 0
	err := DoWithLogger(context.Background(), s, func() error {
		attempts++
		if attempts < 3 {
			return failure.New(failure.KindNetwork, "reset")
		}
		return nil
	}, log)

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if !log.HasMessage("retrying operation") {
		t.Error("retries should be logged")
	}
	if !log.HasMessage("operation succeeded after retry") {
		t.Error("recovery should be logged")
	}
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	s := quickBuilder().Build()

	denied := failure.New(failure.KindAuth, "denied")
	attempts := 0
	err := DoWithLogger(context.Background(), s, func() error {
		attempts++
		return denied
	}, logger.NewTestLogger())

	if !errors.Is(err, denied) {
		t.Errorf("expected the original error back, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("non-retryable failures must not be retried, got %d attempts", attempts)
	}
}

func TestDoExhaustsAttemptBudget(t *testing.T) {
	s := quickBuilder().Build()

	boom := failure.New(failure.KindServer, "internal")
	attempts := 0
	err := DoWithLogger(context.Background(), s, func() error {
		attempts++
		return boom
	}, logger.NewTestLogger())

	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped last error, got %v", err)
	}
	if attempts != s.MaxAttempts() {
		t.Errorf("expected %d attempts, got %d", s.MaxAttempts(), attempts)
	}
}

func TestDoRespectsContextCancellation(t *testing.T) {
	b := NewStandardBuilder()
	b.WithBackoff(&ConstantBackoff{Delay: time.Minute})
	s := Configure(b).Build()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := DoWithLogger(ctx, s, func() error {
		return failure.New(failure.KindNetwork, "reset")
	}, logger.NewTestLogger())

	if err == nil || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context deadline error, got %v", err)
	}
}

func TestStandardQuotaBoundsRetries(t *testing.T) {
	b := NewStandardBuilder()
	b.WithBackoff(&ConstantBackoff{Delay: 0})
	// Quota allows exactly one retry.
	b.WithQuota(ratelimit.NewBucket(5), 5)
	s := Configure(b).Build()

	reset := failure.New(failure.KindNetwork, "reset")
	if !s.ShouldRetry(reset) {
		t.Fatal("first retry should be granted")
	}
	if s.ShouldRetry(reset) {
		t.Error("second retry must be declined once the quota is spent")
	}

	// Success refunds the quota.
	s.RecordSuccess()
	if !s.ShouldRetry(reset) {
		t.Error("retry should be granted again after a successful call refunds quota")
	}
}

func TestLegacyThrottlingBypassesQuota(t *testing.T) {
	b := NewLegacyBuilder()
	s := Configure(b).Build()

	// Drain the quota completely.
	for s.quota.Acquire(retryCost) {
	}

	if s.ShouldRetry(failure.New(failure.KindNetwork, "reset")) {
		t.Error("generic failures must be declined when the quota is empty")
	}
	if !s.ShouldRetry(failure.New(failure.KindThrottling, "slow down")) {
		t.Error("throttled failures bypass the quota in legacy mode")
	}
}

func TestLegacyThrottlingDelayTier(t *testing.T) {
	b := NewLegacyBuilder()
	b.WithBackoff(&ConstantBackoff{Delay: 10 * time.Millisecond})
	b.WithThrottleBackoff(&ConstantBackoff{Delay: 100 * time.Millisecond})
	s := Configure(b).Build()

	generic := s.Delay(1, failure.New(failure.KindNetwork, "reset"))
	throttled := s.Delay(1, failure.New(failure.KindThrottling, "slow down"))

	if generic != 10*time.Millisecond {
		t.Errorf("generic delay = %v, want 10ms", generic)
	}
	if throttled != 100*time.Millisecond {
		t.Errorf("throttled delay = %v, want the throttling tier 100ms", throttled)
	}
}

func TestAdaptiveEnablesLimiterOnThrottle(t *testing.T) {
	limiter := ratelimit.NewAdaptiveLimiter()
	b := NewAdaptiveBuilder()
	b.WithLimiter(limiter)
	s := Configure(b).Build()

	if limiter.Enabled() {
		t.Fatal("limiter must start disabled")
	}

	s.ShouldRetry(failure.New(failure.KindThrottling, "slow down"))
	if !limiter.Enabled() {
		t.Error("a throttling failure must enable the adaptive limiter")
	}
}

func TestPolicyAdapterDelegatesToPolicy(t *testing.T) {
	var retried []int
	policy := &Policy{
		MaxAttempts: 5,
		Backoff:     &ConstantBackoff{Delay: 7 * time.Millisecond},
		RetryIf:     DefaultRetryCondition(),
		OnRetry: func(attempt int, err error, delay time.Duration) {
			retried = append(retried, attempt)
		},
	}
	a := NewPolicyAdapter(policy)

	if a.MaxAttempts() != 5 {
		t.Errorf("MaxAttempts = %d, want 5", a.MaxAttempts())
	}
	if !a.ShouldRetry(failure.New(failure.KindNetwork, "reset")) {
		t.Error("adapter must delegate retry decisions to the policy")
	}
	if a.ShouldRetry(failure.New(failure.KindAuth, "denied")) {
		t.Error("adapter must decline what the policy declines")
	}

	if d := a.Delay(2, failure.New(failure.KindNetwork, "reset")); d != 7*time.Millisecond {
		t.Errorf("Delay = %v, want the policy backoff 7ms", d)
	}
	if len(retried) != 1 || retried[0] != 2 {
		t.Errorf("OnRetry hook not invoked as expected: %v", retried)
	}
}

func TestPolicyAdapterNilPolicyGetsDefaults(t *testing.T) {
	a := NewPolicyAdapter(nil)

	if a.Policy() == nil {
		t.Fatal("nil policy must be replaced with the default rate-limited policy")
	}
	if a.MaxAttempts() != standardMaxAttempts {
		t.Errorf("MaxAttempts = %d, want %d", a.MaxAttempts(), standardMaxAttempts)
	}
	if !a.ShouldRetry(failure.New(failure.KindThrottling, "slow down")) {
		t.Error("default policy must retry throttling failures")
	}
}

func TestPolicyDo(t *testing.T) {
	policy := &Policy{
		MaxAttempts: 3,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     DefaultRetryCondition(),
		Logger:      logger.NewTestLogger(),
	}

	attempts := 0
	err := policy.Do(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return failure.New(failure.KindServer, "flaky")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestStrategiesAreConcurrencySafe(t *testing.T) {
	s := quickBuilder().Build()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				s.ShouldRetry(failure.New(failure.KindNetwork, "reset"))
				s.RecordSuccess()
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
