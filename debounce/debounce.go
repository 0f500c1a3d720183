// Package debounce coalesces bursts of values on a channel so a consumer only
// sees the last value of each burst.
package debounce

import (
	"context"
	"time"
)

// Chan forwards values from in to the returned channel, holding each one until
// window has passed without a newer value arriving. A newer value replaces the
// pending one and restarts the window, so a burst yields only its last value.
// Order is never changed.
//
// When in closes, any pending value is flushed before the output closes. When
// ctx is done the output closes and pending values are dropped. A window of
// zero or less forwards values unchanged.
func Chan[T any](ctx context.Context, in <-chan T, window time.Duration) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)

		var (
			pending T
			has     bool
			timer   *time.Timer
			fire    <-chan time.Time
		)
		stop := func() {
			if timer != nil {
				timer.Stop()
			}
			fire = nil
		}
		defer stop()

		send := func(v T) bool {
			select {
			case out <- v:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					if has {
						send(pending)
					}
					return
				}
				if window <= 0 {
					if !send(v) {
						return
					}
					continue
				}
				pending, has = v, true
				if timer == nil {
					timer = time.NewTimer(window)
				} else {
					timer.Reset(window)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				v := pending
				var zero T
				pending, has = zero, false
				if !send(v) {
					return
				}
			}
		}
	}()

	return out
}
