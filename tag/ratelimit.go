package tag

import (
	"context"

	"github.com/evaldoc/sectag"
	"golang.org/x/time/rate"
)

var _ sectag.RateLimiter = (*Limiter)(nil)

// Limiter throttles judge calls using a token bucket.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter with the specified calls-per-second limit
// and a burst of 1 (no bursting allowed).
func NewLimiter(cps float64) *Limiter {
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(cps), 1)}
}

// Wait blocks until the rate limit allows another call.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
