package services

import "time"

// ShouldWakeForFeeding reports whether an active sleep stretch has outlasted
// the feeding interval. The check stays true on every tick until the session
// ends or the interval grows; callers re-alert each time rather than
// deduplicate.
func ShouldWakeForFeeding(now time.Time, sleepStart time.Time, feedIntervalHours int) bool {
	return now.Sub(sleepStart).Hours() >= float64(feedIntervalHours)
}
