package transport

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter gates request attempts. Implementations block until an
// attempt is allowed or the context is cancelled.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// tokenBucketLimiter wraps rate.Limiter to implement RateLimiter.
type tokenBucketLimiter struct {
	limiter *rate.Limiter
}

// NewTokenBucketLimiter returns a token-bucket RateLimiter allowing rps
// requests per second with the given burst size.
func NewTokenBucketLimiter(rps float64, burst int) RateLimiter {
	return &tokenBucketLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (l *tokenBucketLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
