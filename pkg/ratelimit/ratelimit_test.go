package ratelimit

import (
	"sync"
	"testing"
)

func TestBucketAcquireRelease(t *testing.T) {
	b := NewBucket(10)

	if !b.Acquire(5) {
		t.Fatal("acquire within capacity should succeed")
	}
	if got := b.Available(); got != 5 {
		t.Errorf("Available = %v, want 5", got)
	}

	if b.Acquire(6) {
		t.Error("acquire beyond remaining tokens should fail")
	}
	if got := b.Available(); got != 5 {
		t.Errorf("failed acquire must not drain tokens, Available = %v", got)
	}

	b.Release(3)
	if got := b.Available(); got != 8 {
		t.Errorf("Available after release = %v, want 8", got)
	}
}

func TestBucketReleaseCapsAtCapacity(t *testing.T) {
	b := NewBucket(10)

	b.Release(100)
	if got := b.Available(); got != 10 {
		t.Errorf("Available = %v, want capacity 10", got)
	}
}

func TestBucketReset(t *testing.T) {
	b := NewBucket(10)
	b.Acquire(10)

	b.Reset()
	if got := b.Available(); got != 10 {
		t.Errorf("Available after reset = %v, want 10", got)
	}
}

func TestBucketConcurrentAcquire(t *testing.T) {
	b := NewBucket(100)

	var wg sync.WaitGroup
	granted := make(chan bool, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			granted <- b.Acquire(1)
		}()
	}
	wg.Wait()
	close(granted)

	count := 0
	for ok := range granted {
		if ok {
			count++
		}
	}
	if count != 100 {
		t.Errorf("expected exactly 100 grants, got %d", count)
	}
}

func TestAdaptiveLimiterDisabledUntilThrottled(t *testing.T) {
	l := NewAdaptiveLimiter()

	if l.Enabled() {
		t.Fatal("limiter must start disabled")
	}
	for i := 0; i < 5; i++ {
		if d := l.Delay(); d != 0 {
			t.Fatalf("disabled limiter must impose no delay, got %v", d)
		}
	}
}

func TestAdaptiveLimiterThrottleEnables(t *testing.T) {
	l := NewAdaptiveLimiter()

	l.OnThrottle()
	if !l.Enabled() {
		t.Fatal("limiter must be enabled after a throttle")
	}
	if l.Rate() < defaultMinFillRate {
		t.Errorf("rate %v must not drop below the minimum fill rate", l.Rate())
	}
}

func TestAdaptiveLimiterRecovers(t *testing.T) {
	l := NewAdaptiveLimiter()
	l.OnThrottle()

	before := l.Rate()
	for i := 0; i < 10; i++ {
		l.OnSuccess()
	}
	if l.Rate() <= before {
		t.Errorf("rate should grow on success: before %v, after %v", before, l.Rate())
	}
}

func TestAdaptiveLimiterSuccessBeforeThrottleIsNoop(t *testing.T) {
	l := NewAdaptiveLimiter()

	before := l.Rate()
	l.OnSuccess()
	if l.Rate() != before {
		t.Error("success before any throttle must not change the rate")
	}
}
