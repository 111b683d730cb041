// Package retry provides bounded exponential backoff for remote operations.
//
// The cloud control plane is eventually consistent: a principal created a
// moment ago may not yet be visible to the authorization service, and a
// resource may be briefly locked while a previous operation settles. Callers
// wrap such operations in WithExponentialBackoff and mark non-retryable
// failures with Fatal so they surface immediately.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	defaultMaxRetries   = 5
	defaultInitialDelay = 1 * time.Second
	defaultMaxDelay     = 30 * time.Second
	defaultMultiplier   = 2.0
)

type options struct {
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	retryable    func(error) bool
}

// Option configures the backoff behavior.
type Option func(*options)

// WithMaxRetries sets the number of retries after the first attempt.
func WithMaxRetries(n int) Option {
	return func(o *options) { o.maxRetries = n }
}

// WithInitialDelay sets the delay before the first retry.
func WithInitialDelay(d time.Duration) Option {
	return func(o *options) { o.initialDelay = d }
}

// WithMaxDelay caps the delay between retries.
func WithMaxDelay(d time.Duration) Option {
	return func(o *options) { o.maxDelay = d }
}

// WithMultiplier sets the backoff growth factor.
func WithMultiplier(m float64) Option {
	return func(o *options) { o.multiplier = m }
}

// WithRetryableCheck installs a predicate deciding whether an error is worth
// retrying. Errors rejected by the predicate are returned immediately.
func WithRetryableCheck(f func(error) bool) Option {
	return func(o *options) { o.retryable = f }
}

type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

// Fatal marks an error as non-retryable. Fatal(nil) returns nil.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &fatalError{err: err}
}

// IsFatal reports whether err (or any error it wraps) was marked with Fatal.
func IsFatal(err error) bool {
	var fe *fatalError
	return errors.As(err, &fe)
}

// WithExponentialBackoff runs op until it succeeds, returns a fatal or
// non-retryable error, exhausts the retry budget, or ctx is done.
func WithExponentialBackoff(ctx context.Context, op func() error, opts ...Option) error {
	o := options{
		maxRetries:   defaultMaxRetries,
		initialDelay: defaultInitialDelay,
		maxDelay:     defaultMaxDelay,
		multiplier:   defaultMultiplier,
	}
	for _, opt := range opts {
		opt(&o)
	}

	delay := o.initialDelay
	var lastErr error

	for attempt := 0; attempt <= o.maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("retry aborted: %w", ctx.Err())
			case <-timer.C:
			}
			delay = time.Duration(float64(delay) * o.multiplier)
			if delay > o.maxDelay {
				delay = o.maxDelay
			}
		}

		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if IsFatal(lastErr) {
			return lastErr
		}
		if o.retryable != nil && !o.retryable(lastErr) {
			return lastErr
		}
		if ctx.Err() != nil {
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", o.maxRetries+1, lastErr)
}
