package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/terraincognita07/kroha/internal/services"
)

// firedMarkers remembers, per (category, family), the bucket of the last
// successfully delivered notification. Evaluation runs every few minutes but
// a given alert instance must go out once, so a send happens only when the
// freshly computed bucket differs from the recorded one.
type firedMarkers struct {
	mu     sync.Mutex
	fired  map[string]string
	maxLen int
}

func newFiredMarkers() *firedMarkers {
	return &firedMarkers{
		fired:  make(map[string]string),
		maxLen: 1000,
	}
}

func markerKey(category string, familyID uint) string {
	return fmt.Sprintf("%s:%d", category, familyID)
}

func (markers *firedMarkers) alreadyFired(category string, familyID uint, bucket string) bool {
	markers.mu.Lock()
	defer markers.mu.Unlock()
	return markers.fired[markerKey(category, familyID)] == bucket
}

func (markers *firedMarkers) markFired(category string, familyID uint, bucket string) {
	markers.mu.Lock()
	defer markers.mu.Unlock()

	if len(markers.fired) >= markers.maxLen {
		markers.fired = make(map[string]string)
	}
	markers.fired[markerKey(category, familyID)] = bucket
}

// intervalBucket identifies one alert instance of an interval category: the
// status band anchored to its baseline. A new baseline (the caregiver logged
// the event) or a band transition yields a new bucket; repeated ticks inside
// one band do not. Families without a baseline get a per-day bucket so the
// first-time prompt goes out once per day, not once per tick.
func intervalBucket(assessment services.IntervalAssessment, now time.Time) string {
	if assessment.Status == services.StatusNoBaseline {
		return "first:" + now.Format("2006-01-02")
	}
	return string(assessment.Status) + ":" + assessment.Baseline.Format(time.RFC3339)
}

// clockBucket identifies a once-daily exact-minute alert (bath, tips).
func clockBucket(now time.Time) string {
	return now.Format("2006-01-02 15:04")
}
