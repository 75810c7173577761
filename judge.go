package sectag

import "context"

// Judge reviews a rule-produced label map and returns corrected labels.
// Implementations typically call an external model; the classification
// core never invokes a Judge, only the orchestration layer does. Returned
// maps are expected to be clamped with ValidateLabels by the caller.
type Judge interface {
	Review(ctx context.Context, entries []Entry, labels LabelMap) (LabelMap, error)
}

// RateLimiter throttles calls to an external collaborator.
type RateLimiter interface {
	// Wait blocks until the limiter allows another call or the context is
	// canceled.
	Wait(ctx context.Context) error
}
