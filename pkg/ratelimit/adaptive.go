package ratelimit

import (
	"sync"
	"time"
)

// Defaults for the adaptive limiter.
const (
	defaultMinFillRate     = 0.5 // tokens per second
	defaultSmoothingFactor = 0.8
	throttleBackoffRatio   = 0.7
	recoveryGrowthRate     = 1.1
)

// AdaptiveLimiter is a client-side send-rate limiter. It measures the
// observed request rate, cuts the allowed rate multiplicatively when the
// service reports throttling, and grows it back gradually while requests
// succeed. Until the first throttle is seen the limiter imposes no delay.
type AdaptiveLimiter struct {
	mu sync.Mutex

	enabled      bool
	fillRate     float64 // allowed tokens per second
	minFillRate  float64
	smoothing    float64
	tokens       float64
	lastRefill   time.Time
	measuredRate float64 // smoothed observed request rate
	lastRequest  time.Time
}

// NewAdaptiveLimiter creates a limiter with default tuning
func NewAdaptiveLimiter() *AdaptiveLimiter {
	return NewAdaptiveLimiterWith(defaultMinFillRate, defaultSmoothingFactor)
}

// NewAdaptiveLimiterWith creates a limiter with explicit minimum fill rate
// and measurement smoothing factor
func NewAdaptiveLimiterWith(minFillRate, smoothing float64) *AdaptiveLimiter {
	if minFillRate <= 0 {
		minFillRate = defaultMinFillRate
	}
	if smoothing <= 0 || smoothing >= 1 {
		smoothing = defaultSmoothingFactor
	}
	now := time.Now()
	return &AdaptiveLimiter{
		fillRate:    minFillRate,
		minFillRate: minFillRate,
		smoothing:   smoothing,
		lastRefill:  now,
		lastRequest: now,
	}
}

// Delay returns how long the caller should hold the next request to stay
// within the allowed rate. Zero until throttling has been observed.
func (l *AdaptiveLimiter) Delay() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.observe()

	if !l.enabled {
		return 0
	}

	l.refill()
	if l.tokens >= 1 {
		l.tokens--
		return 0
	}

	needed := 1 - l.tokens
	l.tokens = 0
	return time.Duration(needed / l.fillRate * float64(time.Second))
}

// OnThrottle records a throttling response and cuts the allowed rate
func (l *AdaptiveLimiter) OnThrottle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.observe()
	l.enabled = true

	rate := l.measuredRate * throttleBackoffRatio
	if rate < l.minFillRate {
		rate = l.minFillRate
	}
	l.fillRate = rate
}

// OnSuccess records a successful response and grows the allowed rate
func (l *AdaptiveLimiter) OnSuccess() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled {
		return
	}
	l.fillRate *= recoveryGrowthRate
}

// Enabled reports whether throttling has been observed and the limiter is
// actively pacing requests
func (l *AdaptiveLimiter) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.enabled
}

// Rate returns the current allowed fill rate in tokens per second
func (l *AdaptiveLimiter) Rate() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.fillRate
}

// observe updates the smoothed measurement of the observed request rate.
// Callers must hold the mutex.
func (l *AdaptiveLimiter) observe() {
	now := time.Now()
	elapsed := now.Sub(l.lastRequest).Seconds()
	l.lastRequest = now

	if elapsed <= 0 {
		return
	}
	instant := 1 / elapsed
	l.measuredRate = l.measuredRate*l.smoothing + instant*(1-l.smoothing)
}

// refill adds tokens according to the allowed fill rate. Callers must hold
// the mutex.
func (l *AdaptiveLimiter) refill() {
	now := time.Now()
	elapsed := now.Sub(l.lastRefill).Seconds()
	l.lastRefill = now

	l.tokens += elapsed * l.fillRate
	if l.tokens > l.fillRate {
		// Burst capacity of one second worth of tokens.
		l.tokens = l.fillRate
	}
}
