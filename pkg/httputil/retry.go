package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient. Only errors wrapped with this
// type are retried by [Retry].
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Policy bounds a retry loop.
type Policy struct {
	Attempts int           // total tries, at least 1
	Delay    time.Duration // first backoff, doubled after each failure
}

// DefaultPolicy is 3 attempts starting at 500ms.
var DefaultPolicy = Policy{Attempts: 3, Delay: 500 * time.Millisecond}

// Retry runs fn until it succeeds, returns a non-retryable error, or the
// policy is exhausted. It returns the last error, or ctx.Err() when the
// context is cancelled during a backoff.
func Retry(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var lastErr error

	for i := range attempts {
		if err := fn(ctx); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// IsRetryable reports whether err is marked transient.
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
