// internal/payout/clock.go
package payout

import "time"

// Clock returns the evaluation-time "now".
type Clock func() time.Time

// SystemClock reads the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns t. Handy for tests and replays.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
