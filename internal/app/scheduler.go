package app

import "time"

// Scheduler runs deferred work. It stands in for network latency in the
// simulated auth and profile calls.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// TimerScheduler runs f on its own goroutine once d has elapsed.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
