package retry

import "time"

// PolicyAdapter lifts the legacy Policy object into the Strategy interface.
// It is also the marker type for the adaptive compatibility mode: ModeOf
// maps an adapter back to ModeAdaptive.
type PolicyAdapter struct {
	policy *Policy
}

// NewPolicyAdapter wraps the given policy; a nil policy gets the default
// rate-limited one
func NewPolicyAdapter(policy *Policy) *PolicyAdapter {
	if policy == nil {
		policy = RateLimitedPolicy()
	}
	return &PolicyAdapter{policy: policy}
}

// Policy returns the wrapped policy object
func (a *PolicyAdapter) Policy() *Policy {
	return a.policy
}

func (a *PolicyAdapter) ShouldRetry(err error) bool {
	if a.policy.Limiter != nil && treatAsThrottling(err) {
		a.policy.Limiter.OnThrottle()
	}
	if a.policy.RetryIf == nil {
		return false
	}
	return a.policy.RetryIf(err)
}

func (a *PolicyAdapter) IsThrottling(err error) bool {
	return treatAsThrottling(err)
}

func (a *PolicyAdapter) Delay(attempt int, err error) time.Duration {
	var delay time.Duration
	if a.policy.Backoff != nil {
		delay = a.policy.Backoff.NextDelay(attempt)
	}
	if a.policy.Limiter != nil {
		if pace := a.policy.Limiter.Delay(); pace > delay {
			delay = pace
		}
	}
	if a.policy.OnRetry != nil {
		a.policy.OnRetry(attempt, err, delay)
	}
	return delay
}

func (a *PolicyAdapter) MaxAttempts() int {
	if a.policy.MaxAttempts <= 0 {
		return standardMaxAttempts
	}
	return a.policy.MaxAttempts
}

func (a *PolicyAdapter) RecordSuccess() {
	if a.policy.Limiter != nil {
		a.policy.Limiter.OnSuccess()
	}
}
