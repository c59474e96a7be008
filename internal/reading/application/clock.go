package application

import "time"

// Clock abstracts timers so reveal pacing can be driven in tests.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

// SystemClock uses the wall clock.
type SystemClock struct{}

// After implements Clock.
func (SystemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
