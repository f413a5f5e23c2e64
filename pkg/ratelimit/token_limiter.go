package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// TokenLimiter throttles consumption of a per-minute token budget.
type TokenLimiter struct {
	limiter *rate.Limiter
	max     int
}

// NewTokenLimiter creates a limiter allowing maxPerMinute tokens per minute.
func NewTokenLimiter(maxPerMinute int) *TokenLimiter {
	if maxPerMinute <= 0 {
		maxPerMinute = 1
	}
	return &TokenLimiter{
		limiter: rate.NewLimiter(rate.Limit(float64(maxPerMinute)/60.0), maxPerMinute),
		max:     maxPerMinute,
	}
}

// Wait blocks until the given number of tokens is available or ctx is done.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	if tokens <= 0 {
		return nil
	}
	if tokens > l.max {
		tokens = l.max
	}
	return l.limiter.WaitN(ctx, tokens)
}

// GetRemaining reports the tokens currently available in the bucket.
func (l *TokenLimiter) GetRemaining() int {
	return int(l.limiter.Tokens())
}
