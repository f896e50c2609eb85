// Package clockref holds the pure time arithmetic shared by the timer and
// the replication layer. Nothing here carries state.
package clockref

import "time"

// Remaining converts a running phase's reference point into seconds left.
// startRemaining is how many seconds were left at startRef. The result is
// non-increasing in now and never negative.
func Remaining(startRef time.Time, startRemaining int, now time.Time) int {
	elapsed := int(now.Sub(startRef).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := startRemaining - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DayKey formats t as the local-calendar bucket key, e.g. "2026-03-14".
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
