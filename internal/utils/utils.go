package utils

import (
	"context"
	"time"
)

// Sleeper blocks for the given duration.
type Sleeper func(time.Duration)

// WaitFor blocks for d or until ctx is done, whichever comes first.
// A nil sleep waits on a timer.
func WaitFor(ctx context.Context, d time.Duration, sleep Sleeper) error {
	if d <= 0 {
		return ctx.Err()
	}

	if sleep == nil {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
