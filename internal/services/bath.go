package services

import (
	"time"

	"github.com/terraincognita07/kroha/internal/models"
)

// BathAssessment describes the bath cadence for one family. Unlike the
// interval categories, bathing is checked against whole days and fires only
// on the family's configured wall-clock minute.
type BathAssessment struct {
	HasBaseline bool
	LastBath    time.Time
	DaysSince   int
	PeriodDays  int
}

// AssessBath reports whether the bath reminder fires right now: the current
// hour:minute must equal the configured pair, and either no bath was ever
// logged or at least PeriodDays full days have passed since the last one.
func AssessBath(now time.Time, lastBath *time.Time, settings models.Settings) (BathAssessment, bool) {
	assessment := BathAssessment{PeriodDays: settings.BathPeriodDays}

	if !ClockMinuteMatches(now, settings.BathHour, settings.BathMinute) {
		return assessment, false
	}

	if lastBath == nil || lastBath.IsZero() {
		return assessment, true
	}

	assessment.HasBaseline = true
	assessment.LastBath = *lastBath
	assessment.DaysSince = int(now.Sub(*lastBath).Hours() / 24)

	return assessment, assessment.DaysSince >= settings.BathPeriodDays
}
