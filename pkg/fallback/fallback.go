// Package fallback bounds build-time fetches with a hard timeout and a
// static fallback value, so that an unavailable CMS can never hang or
// fail static path enumeration. Runtime request handling must not use
// it: runtime callers are expected to see real upstream errors.
package fallback

import (
	"context"
	"log/slog"
	"time"
)

// DefaultTimeout is the build-time budget for a single enumeration
// query.
const DefaultTimeout = 8 * time.Second

// WithTimeout races op against a timer. If op finishes first its value
// is returned; on timeout or error the fallback value is returned and
// the error, if any, is logged rather than propagated. The operation's
// context is cancelled on timeout so a cooperative op aborts its
// request; an op that ignores cancellation keeps running detached and
// its eventual result is discarded, which is acceptable only because
// the enumerating process exits shortly after.
func WithTimeout[T any](ctx context.Context, name string, op func(context.Context) (T, error), fallbackValue T, timeout time.Duration) T {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opCtx, cancel := context.WithCancel(ctx)

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := op(opCtx)
		done <- result{value: v, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		cancel()
		if res.err != nil {
			slog.Warn("build-time fetch failed, using fallback", "operation", name, "error", res.err)
			return fallbackValue
		}
		return res.value

	case <-timer.C:
		cancel()
		slog.Warn("build-time fetch timed out, using fallback", "operation", name, "timeout", timeout)
		return fallbackValue
	}
}
