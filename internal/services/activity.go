package services

import (
	"time"

	"github.com/terraincognita07/kroha/internal/models"
)

// Minimum distance to the next feeding deadline before a play prompt is
// allowed. Playing right before a feeding is due upsets the routine.
const activityFeedingGateMinutes = 20

type ActivityAssessment struct {
	HasActivityBaseline bool
	LastActivity        time.Time
	HoursSinceActivity  float64
	MinutesUntilFeeding float64
	IntervalHours       int
}

// AssessActivity gates the play reminder on two independent conditions: the
// family's own activity interval has elapsed (or no activity was ever
// logged), and the next feeding is at least 20 minutes away. Without a
// feeding baseline the gate cannot be computed, so nothing fires.
func AssessActivity(now time.Time, lastActivity *time.Time, lastFeeding *time.Time, settings models.Settings) (ActivityAssessment, bool) {
	assessment := ActivityAssessment{IntervalHours: settings.ActivityIntervalHours}

	if lastFeeding == nil || lastFeeding.IsZero() {
		return assessment, false
	}

	hoursSinceFeeding := now.Sub(*lastFeeding).Hours()
	assessment.MinutesUntilFeeding = (float64(settings.FeedIntervalHours) - hoursSinceFeeding) * 60
	if assessment.MinutesUntilFeeding < activityFeedingGateMinutes {
		return assessment, false
	}

	if lastActivity == nil || lastActivity.IsZero() {
		return assessment, true
	}

	assessment.HasActivityBaseline = true
	assessment.LastActivity = *lastActivity
	assessment.HoursSinceActivity = now.Sub(*lastActivity).Hours()

	return assessment, assessment.HoursSinceActivity >= float64(settings.ActivityIntervalHours)
}
