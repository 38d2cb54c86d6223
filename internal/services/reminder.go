package services

import "time"

type ReminderStatus string

const (
	// StatusNoBaseline means no event of the category was ever logged.
	StatusNoBaseline ReminderStatus = "no_baseline"
	StatusNotDue     ReminderStatus = "not_due"
	// StatusUpcoming covers the last 15 minutes before the deadline.
	StatusUpcoming ReminderStatus = "upcoming"
	// StatusDue covers [interval, interval+30m).
	StatusDue ReminderStatus = "due"
	// StatusQuiet is the band [interval+30m, interval+1h) where nothing
	// fires. The gap between the due window closing and the overdue alert
	// opening is intentional hysteresis; do not fill it.
	StatusQuiet ReminderStatus = "quiet"
	// StatusOverdue starts at interval+1h.
	StatusOverdue ReminderStatus = "overdue"
)

const (
	upcomingLead = 15 * time.Minute
	dueWindow    = 30 * time.Minute
	overdueAfter = time.Hour
)

// IntervalAssessment classifies one elapsed-interval category (feeding or
// diaper) at a single point in time. It is recomputed on every tick and
// never stored.
type IntervalAssessment struct {
	Status   ReminderStatus
	Interval time.Duration
	Elapsed  time.Duration
	Baseline time.Time
}

func (assessment IntervalAssessment) Remaining() time.Duration {
	remaining := assessment.Interval - assessment.Elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AssessInterval classifies an interval category against its baseline. A nil
// or zero baseline (never logged, or an unparseable stored timestamp) yields
// StatusNoBaseline; the category is then treated as immediately due for a
// first-time prompt.
func AssessInterval(now time.Time, baseline *time.Time, intervalHours int) IntervalAssessment {
	interval := time.Duration(intervalHours) * time.Hour
	if baseline == nil || baseline.IsZero() {
		return IntervalAssessment{Status: StatusNoBaseline, Interval: interval}
	}

	assessment := IntervalAssessment{
		Interval: interval,
		Elapsed:  now.Sub(*baseline),
		Baseline: *baseline,
	}

	switch {
	case assessment.Elapsed < interval-upcomingLead:
		assessment.Status = StatusNotDue
	case assessment.Elapsed < interval:
		assessment.Status = StatusUpcoming
	case assessment.Elapsed < interval+dueWindow:
		assessment.Status = StatusDue
	case assessment.Elapsed < interval+overdueAfter:
		assessment.Status = StatusQuiet
	default:
		assessment.Status = StatusOverdue
	}
	return assessment
}
