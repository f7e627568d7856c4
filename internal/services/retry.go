package services

import (
	"context"
	"errors"
	"log"
	"math"
	"time"
)

// RetryConfig controls retry behavior for oracle and index calls.
type RetryConfig struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

var DefaultRetryConfig = RetryConfig{
	MaxRetries:  2,
	InitialWait: 500 * time.Millisecond,
	MaxWait:     8 * time.Second,
	Multiplier:  2.0,
}

// errPermanent marks an error that retrying cannot fix.
type errPermanent struct{ err error }

func (e *errPermanent) Error() string { return e.err.Error() }
func (e *errPermanent) Unwrap() error { return e.err }

// Permanent wraps err so RetryDo returns it without another attempt.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &errPermanent{err: err}
}

// RetryDo retries fn up to MaxRetries times with exponential backoff.
// It stops early on a Permanent error or when ctx is done.
func RetryDo[T any](ctx context.Context, rc RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= rc.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		var perm *errPermanent
		if errors.As(err, &perm) {
			return zero, perm.err
		}

		if attempt < rc.MaxRetries {
			wait := time.Duration(float64(rc.InitialWait) * math.Pow(rc.Multiplier, float64(attempt)))
			if wait > rc.MaxWait {
				wait = rc.MaxWait
			}
			log.Printf("⚠️ Attempt %d failed: %v. Retrying in %s...\n", attempt+1, err, wait)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}
	}
	return zero, lastErr
}
