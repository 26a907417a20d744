// Package pool holds pooled timers used for bounded waits on instrument reads.
package pool

import (
	"sync"
	"time"
)

var timerPool sync.Pool

// GetTimer returns a timer from the pool armed for duration d.
//
// Since Go 1.23 Reset and Stop discard any pending tick, so a pooled timer never
// delivers a stale value. Return it with PutTimer.
func GetTimer(d time.Duration) *time.Timer {
	if t, ok := timerPool.Get().(*time.Timer); ok {
		t.Reset(d)
		return t
	}

	return time.NewTimer(d)
}

// PutTimer stops t and returns it to the pool. t must not be used afterwards.
func PutTimer(t *time.Timer) {
	t.Stop()
	timerPool.Put(t)
}

// Wait blocks for d or until cancel is closed, whichever happens first.
// It reports whether the full duration elapsed.
func Wait(d time.Duration, cancel <-chan struct{}) bool {
	t := GetTimer(d)
	defer PutTimer(t)

	select {
	case <-t.C:
		return true
	case <-cancel:
		return false
	}
}
