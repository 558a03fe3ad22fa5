package services

import "errors"

// Engine error taxonomy. DuplicateJob and RateLimited are expected outcomes
// of admission that callers branch on, not failures to retry. Anything else
// coming out of the storage layer is treated as transient and surfaced as-is
// for the caller to retry with backoff.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateJob      = errors.New("already applied to this job")
	ErrRateLimited       = errors.New("application rate limit reached")
	ErrInvalidTransition = errors.New("invalid status transition")
)
