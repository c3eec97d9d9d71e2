//go:build unit

package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) Policy {
	return Policy{
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      2,
	}
}

func TestDo(t *testing.T) {
	errTransient := errors.New("element not found")
	errFinal := errors.New("no flights found")

	doRequest := func(
		policy Policy,
		failures func(attempt int) error,
		wantCalls int,
		wantErr error,
	) func(t *testing.T) {
		return func(t *testing.T) {
			calls := 0
			err := Do(context.Background(), policy, func(_ context.Context, attempt int) error {
				calls++
				assert.Equal(t, calls, attempt)
				return failures(attempt)
			}, nil)

			assert.Equal(t, wantCalls, calls)
			if wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, wantErr)
		}
	}

	t.Run("success_on_fifth_attempt", doRequest(fastPolicy(5), func(attempt int) error {
		if attempt < 5 {
			return MarkRetryable(errTransient)
		}
		return nil
	}, 5, nil))

	t.Run("untagged_errors_are_retried", doRequest(fastPolicy(3), func(int) error {
		return errTransient
	}, 3, errTransient))

	t.Run("terminal_stops_immediately", doRequest(fastPolicy(5), func(int) error {
		return MarkTerminal(errFinal)
	}, 1, errFinal))

	t.Run("terminal_after_transient", doRequest(fastPolicy(5), func(attempt int) error {
		if attempt == 1 {
			return errTransient
		}
		return fmt.Errorf("extract: %w", MarkTerminal(errFinal))
	}, 2, errFinal))

	t.Run("exhausted", doRequest(fastPolicy(5), func(int) error {
		return MarkRetryable(errTransient)
	}, 5, errTransient))
}

func TestDo_ReturnsUntaggedError(t *testing.T) {
	errFinal := errors.New("final")

	err := Do(context.Background(), fastPolicy(2), func(context.Context, int) error {
		return MarkTerminal(errFinal)
	}, nil)

	assert.Same(t, errFinal, err)
}

func TestDo_Notify(t *testing.T) {
	var waits []time.Duration
	var attempts []int

	policy := Policy{
		MaxAttempts:     5,
		InitialInterval: time.Millisecond,
		MaxInterval:     3 * time.Millisecond,
		Multiplier:      2,
	}

	_ = Do(context.Background(), policy, func(context.Context, int) error {
		return errors.New("timeout")
	}, func(_ error, attempt int, wait time.Duration) {
		attempts = append(attempts, attempt)
		waits = append(waits, wait)
	})

	assert.Equal(t, []int{1, 2, 3, 4}, attempts)
	assert.Equal(t, []time.Duration{
		time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond, 3 * time.Millisecond,
	}, waits)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := Do(ctx, Policy{MaxAttempts: 5, InitialInterval: time.Hour, MaxInterval: time.Hour, Multiplier: 2},
		func(context.Context, int) error {
			calls++
			cancel()
			return errors.New("timeout")
		}, nil)

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, Retryable, ClassOf(errors.New("plain")))
	assert.Equal(t, Terminal, ClassOf(fmt.Errorf("wrap: %w", MarkTerminal(errors.New("x")))))
	assert.Equal(t, Retryable, ClassOf(MarkRetryable(MarkTerminal(errors.New("x")))))
	assert.Nil(t, MarkTerminal(nil))
	assert.Equal(t, "terminal", Terminal.String())
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 5, p.MaxAttempts)
	assert.Equal(t, 4*time.Second, p.InitialInterval)
	assert.Equal(t, 10*time.Second, p.MaxInterval)
}
