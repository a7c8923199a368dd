package backend

import (
	"context"
	"time"
)

// throttle spaces option-map reloads so a file that is being written in
// several steps is read once it has settled. It is owned by the poller
// goroutine and is not safe for concurrent use.
type throttle struct {
	interval time.Duration
	next     time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval < 0 {
		interval = 0
	}
	return &throttle{interval: interval}
}

// wait blocks until the next reload slot opens and claims it. It returns
// false when ctx is cancelled first.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.interval == 0 {
		return ctx.Err() == nil
	}
	if delay := time.Until(t.next); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}
	t.next = time.Now().Add(t.interval)
	return true
}
