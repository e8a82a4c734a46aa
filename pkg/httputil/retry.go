package httputil

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/heatcal/pkg/errors"
)

// maxRetryDelay caps every wait, including those a server asks for.
const maxRetryDelay = 30 * time.Second

// RetryableError marks a failure worth another attempt: a dropped
// connection, a 5xx answer or a rate limit. [Retry] gives up on anything
// else at once.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry calls fn until it succeeds, fails without a [RetryableError], or has
// run attempts times (at least once). The wait starts at delay and doubles.
// A rate limit with a Retry-After hint waits at least that long. It returns
// ctx.Err() when ctx ends during a wait.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !retryable(err) || attempt >= attempts {
			return err
		}

		timer := time.NewTimer(min(max(delay, retryAfter(err)), maxRetryDelay))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}

func retryable(err error) bool {
	return stderrors.As(err, new(*RetryableError))
}

func retryAfter(err error) time.Duration {
	var rl *errors.RateLimitedError
	if stderrors.As(err, &rl) {
		return time.Duration(rl.RetryAfter) * time.Second
	}
	return 0
}
