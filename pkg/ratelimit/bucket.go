package ratelimit

import "sync"

// Bucket is a fixed-capacity token bucket used as a retry quota. Retries
// acquire tokens, successful calls release them back. When the bucket runs
// dry the client has spent its retry budget and must fail fast instead of
// piling retries onto a struggling dependency.
type Bucket struct {
	capacity float64
	tokens   float64
	mu       sync.Mutex
}

// NewBucket creates a bucket filled to the given capacity
func NewBucket(capacity float64) *Bucket {
	if capacity <= 0 {
		capacity = 1
	}
	return &Bucket{
		capacity: capacity,
		tokens:   capacity,
	}
}

// Acquire takes cost tokens from the bucket. It returns false without
// taking anything when fewer than cost tokens remain.
func (b *Bucket) Acquire(cost float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tokens < cost {
		return false
	}
	b.tokens -= cost
	return true
}

// Release returns amount tokens to the bucket, capped at capacity
func (b *Bucket) Release(amount float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens += amount
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
}

// Available returns the number of tokens currently in the bucket
func (b *Bucket) Available() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.tokens
}

// Reset refills the bucket to full capacity
func (b *Bucket) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens = b.capacity
}
