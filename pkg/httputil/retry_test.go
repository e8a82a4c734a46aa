package httputil

import (
	"context"
	"errors"
	"testing"
	"time"

	heatcalerrors "github.com/matzehuels/heatcal/pkg/errors"
)

var errTransient = errors.New("transient")

func TestRetry(t *testing.T) {
	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		attempts  int
		failures  int // calls that fail before success
		err       error
		wantCalls int
		wantErr   error
	}{
		{"first try", 3, 0, nil, 1, nil},
		{"recovers", 3, 2, &RetryableError{Err: errTransient}, 3, nil},
		{"exhausted", 3, 5, &RetryableError{Err: errTransient}, 3, errTransient},
		{"permanent", 3, 5, permanent, 1, permanent},
		{"zero attempts", 0, 5, &RetryableError{Err: errTransient}, 1, errTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), tt.attempts, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Retry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return &RetryableError{Err: errTransient}
	})
	if err != context.Canceled {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
}

func TestRetryHonoursRetryAfter(t *testing.T) {
	limited := &RetryableError{Err: &heatcalerrors.RateLimitedError{RetryAfter: 1}}
	if got := retryAfter(limited); got != time.Second {
		t.Errorf("retryAfter() = %v, want 1s", got)
	}
	if got := retryAfter(&RetryableError{Err: errTransient}); got != 0 {
		t.Errorf("retryAfter(plain) = %v, want 0", got)
	}

	start := time.Now()
	calls := 0
	_ = Retry(context.Background(), 2, time.Millisecond, func() error {
		calls++
		return limited
	})
	if elapsed := time.Since(start); elapsed < time.Second {
		t.Errorf("Retry() waited %v, want at least the 1s Retry-After", elapsed)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
