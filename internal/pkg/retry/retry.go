// Package retry runs an operation under a bounded exponential backoff.
// Failure sites tag their errors Retryable or Terminal; only the tag
// decides whether another attempt is made.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Class tells the retry driver what to do with a failure.
type Class int

const (
	// Retryable failures are transient; the operation runs again.
	Retryable Class = iota
	// Terminal failures are final answers and end the retry loop.
	Terminal
)

func (c Class) String() string {
	if c == Terminal {
		return "terminal"
	}

	return "retryable"
}

// Error carries a failure together with its class.
type Error struct {
	Class Class
	Err   error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MarkTerminal tags err so that it ends the retry loop.
func MarkTerminal(err error) error {
	if err == nil {
		return nil
	}

	return &Error{Class: Terminal, Err: err}
}

// MarkRetryable tags err as transient.
func MarkRetryable(err error) error {
	if err == nil {
		return nil
	}

	return &Error{Class: Retryable, Err: err}
}

// ClassOf returns the class of the outermost tag in the chain.
// Untagged errors are retryable.
func ClassOf(err error) Class {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Class
	}

	return Retryable
}

// Policy bounds the retry loop.
type Policy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultPolicy is five attempts waiting 4s, 8s, 10s, 10s in between.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     5,
		InitialInterval: 4 * time.Second,
		MaxInterval:     10 * time.Second,
		Multiplier:      2,
	}
}

// Operation is one attempt. attempt starts at 1.
type Operation func(ctx context.Context, attempt int) error

// NotifyFunc is called after a retryable failure with the wait before the next attempt.
type NotifyFunc func(err error, attempt int, wait time.Duration)

// Do runs op until it succeeds, fails with a Terminal error, the attempts
// are exhausted or ctx is done. It returns the last error with any retry
// tag removed, so callers see the failure site's own error.
func Do(ctx context.Context, policy Policy, op Operation, notify NotifyFunc) error {
	attempt := 0

	err := backoff.RetryNotify(func() error {
		attempt++

		err := op(ctx, attempt)
		if err == nil {
			return nil
		}

		if ClassOf(err) == Terminal {
			return backoff.Permanent(err)
		}

		return err
	}, policy.backOff(ctx), func(err error, wait time.Duration) {
		if notify != nil {
			notify(err, attempt, wait)
		}
	})

	return untag(err)
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.MaxInterval = p.MaxInterval
	exp.Multiplier = p.Multiplier
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = 0

	retries := p.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}

	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

func untag(err error) error {
	for {
		tagged, ok := err.(*Error)
		if !ok {
			return err
		}

		err = tagged.Err
	}
}
