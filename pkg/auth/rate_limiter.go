package auth

import (
	"context"
	"sync"
	"time"
)

// RateLimiter provides rate limiting functionality
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// TokenBucketLimiter implements token bucket rate limiting
type TokenBucketLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	maxTokens  int
	refillRate time.Duration
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewTokenBucketLimiter creates a new token bucket rate limiter
func NewTokenBucketLimiter(maxTokens int, refillRate time.Duration) *TokenBucketLimiter {
	return &TokenBucketLimiter{
		buckets:    make(map[string]*bucket),
		maxTokens:  maxTokens,
		refillRate: refillRate,
	}
}

// Allow checks if a request is allowed
func (l *TokenBucketLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, exists := l.buckets[key]
	if !exists {
		b = &bucket{tokens: l.maxTokens, lastRefill: time.Now()}
		l.buckets[key] = b
	}

	// Refill proportionally to elapsed time.
	elapsed := time.Since(b.lastRefill)
	refill := int(elapsed / l.refillRate)
	if refill > 0 {
		b.tokens = min(l.maxTokens, b.tokens+refill)
		b.lastRefill = time.Now()
	}

	if b.tokens <= 0 {
		return false, nil
	}
	b.tokens--
	return true, nil
}

// IPRateLimiter limits requests per client IP
type IPRateLimiter struct {
	limiter *TokenBucketLimiter
}

// NewIPRateLimiter creates an IP rate limiter allowing requestsPerMinute
func NewIPRateLimiter(requestsPerMinute int) *IPRateLimiter {
	return &IPRateLimiter{
		limiter: NewTokenBucketLimiter(requestsPerMinute, time.Minute/time.Duration(requestsPerMinute)),
	}
}

// Allow checks if a request from the given IP is allowed
func (l *IPRateLimiter) Allow(ctx context.Context, ip string) (bool, error) {
	return l.limiter.Allow(ctx, ip)
}
