package mock

import (
	"context"

	"github.com/evaldoc/sectag"
)

var _ sectag.Judge = (*Judge)(nil)

// Judge is a mock implementation of sectag.Judge.
type Judge struct {
	ReviewFn func(ctx context.Context, entries []sectag.Entry, labels sectag.LabelMap) (sectag.LabelMap, error)
}

func (j *Judge) Review(ctx context.Context, entries []sectag.Entry, labels sectag.LabelMap) (sectag.LabelMap, error) {
	return j.ReviewFn(ctx, entries, labels)
}

var _ sectag.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of sectag.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *RateLimiter) Wait(ctx context.Context) error {
	return l.WaitFn(ctx)
}
