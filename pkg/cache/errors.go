package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound reports that a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNetwork reports a backend connectivity failure: refused or
	// dropped connections, timeouts.
	ErrNetwork = errors.New("network error")
)

// RetryableError marks an error as transient so RetryWithBackoff tries
// again instead of giving up.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries the RetryableError marker.
func IsRetryable(err error) bool {
	var marker *RetryableError
	return errors.As(err, &marker)
}

// Retry tuning for RetryWithBackoff.
const (
	retryAttempts = 3
	retryBaseWait = time.Second
)

// RetryWithBackoff runs fn until it succeeds, fails permanently, or
// exhausts its attempts; the wait doubles between attempts. Only errors
// carrying the RetryableError marker count as transient. Serve mode
// leans on this for backends that race container startup.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == retryAttempts-1 {
			break
		}
		wait := retryBaseWait << uint(attempt)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return err
}
