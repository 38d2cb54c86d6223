package services

import "time"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// ClockMinuteMatches reports whether now falls on the exact configured
// wall-clock minute. Callers must evaluate on a cadence of one minute or
// finer, or the minute can be skipped entirely.
func ClockMinuteMatches(now time.Time, hour int, minute int) bool {
	return now.Hour() == hour && now.Minute() == minute
}

func sameDay(a time.Time, b time.Time) bool {
	aYear, aMonth, aDay := a.Date()
	bYear, bMonth, bDay := b.Date()
	return aYear == bYear && aMonth == bMonth && aDay == bDay
}
