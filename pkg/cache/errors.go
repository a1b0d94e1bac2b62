package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a cache backend that could not be reached.
var ErrNetwork = errors.New("cache backend unavailable")

// RetryableError marks a transient failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err so RetryWithBackoff retries it. nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err or anything it wraps is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

const retryAttempts = 3

// retryBaseDelay doubles after each failed attempt. Tests shorten it.
var retryBaseDelay = 100 * time.Millisecond

// RetryWithBackoff calls fn until it succeeds, returns a non-retryable
// error, or retryAttempts calls have failed. Waiting honors ctx.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	var err error
	for attempt, delay := 0, retryBaseDelay; attempt < retryAttempts; attempt, delay = attempt+1, delay*2 {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == retryAttempts-1 {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return err
}
