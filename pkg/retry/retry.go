// Package retry re-runs operations that fail with transient errors.
//
// Callers mark errors worth another attempt with [Transient]; anything else
// stops a [Policy] immediately:
//
//	err := retry.Network.Do(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return retry.Transient(err)
//	    }
//	    ...
//	})
package retry

import (
	"context"
	"errors"
	"time"
)

// Policy bounds how often and how patiently an operation is retried.
type Policy struct {
	Attempts int           // total tries; values below 1 mean one try
	Delay    time.Duration // wait before the second try, doubled after each failure
}

var (
	// Network suits requests to remote HTTP servers.
	Network = Policy{Attempts: 3, Delay: time.Second}

	// Dial suits connecting to cache and database servers at startup.
	Dial = Policy{Attempts: 3, Delay: 200 * time.Millisecond}
)

// Do runs fn until it succeeds, fails with an error not marked
// [Transient], or runs out of attempts. It returns the last error, or
// ctx.Err() if the context ends while waiting.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return err
}

type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as worth retrying. It returns nil for a nil error.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether any error in err's chain was marked with
// [Transient].
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}
