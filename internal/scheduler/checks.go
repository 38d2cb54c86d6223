package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/terraincognita07/kroha/internal/models"
	"github.com/terraincognita07/kroha/internal/services"
)

// CheckFeedings evaluates the feeding interval for every family with
// reminders enabled. A store failure aborts the whole tick (nothing was
// mutated, the next cadence retries); a failure for one family only skips
// that family.
func (scheduler *Scheduler) CheckFeedings(ctx context.Context) {
	scheduler.checkIntervalCategory(ctx, services.CategoryFeeding)
}

// CheckDiapers is the diaper twin of CheckFeedings.
func (scheduler *Scheduler) CheckDiapers(ctx context.Context) {
	scheduler.checkIntervalCategory(ctx, services.CategoryDiaper)
}

func (scheduler *Scheduler) checkIntervalCategory(ctx context.Context, category string) {
	familyIDs, err := scheduler.store.FamilyIDsWithTipsEnabled(ctx)
	if err != nil {
		log.Printf("scheduler: %s tick: list families failed: %v", category, err)
		return
	}

	for _, familyID := range familyIDs {
		if err := scheduler.evaluateInterval(ctx, familyID, category); err != nil {
			log.Printf("scheduler: %s tick: family %d: %v", category, familyID, err)
		}
	}
}

func (scheduler *Scheduler) evaluateInterval(ctx context.Context, familyID uint, category string) error {
	settings, err := scheduler.store.Settings(ctx, familyID)
	if err != nil {
		return err
	}

	kind := models.KindFeeding
	intervalHours := settings.FeedIntervalHours
	if category == services.CategoryDiaper {
		kind = models.KindDiaper
		intervalHours = settings.DiaperIntervalHours
	}

	baseline, err := scheduler.latestTimestamp(ctx, familyID, kind)
	if err != nil {
		return err
	}

	now := scheduler.now().In(scheduler.location)
	assessment := services.AssessInterval(now, baseline, intervalHours)

	var notification *services.Notification
	if category == services.CategoryDiaper {
		notification = services.BuildDiaperNotification(assessment, settings)
	} else {
		notification = services.BuildFeedingNotification(assessment, settings)
	}
	if notification == nil {
		return nil
	}

	scheduler.dispatch(ctx, familyID, intervalBucket(assessment, now), *notification)
	return nil
}

// CheckBaths fires the once-daily bath reminder when the wall clock hits the
// family's configured minute and the cadence in days is satisfied.
func (scheduler *Scheduler) CheckBaths(ctx context.Context) {
	familyIDs, err := scheduler.store.FamilyIDsWithBathReminders(ctx)
	if err != nil {
		log.Printf("scheduler: bath tick: list families failed: %v", err)
		return
	}

	now := scheduler.now().In(scheduler.location)
	for _, familyID := range familyIDs {
		if err := scheduler.evaluateBath(ctx, familyID, now); err != nil {
			log.Printf("scheduler: bath tick: family %d: %v", familyID, err)
		}
	}
}

func (scheduler *Scheduler) evaluateBath(ctx context.Context, familyID uint, now time.Time) error {
	settings, err := scheduler.store.Settings(ctx, familyID)
	if err != nil {
		return err
	}

	lastBath, err := scheduler.latestTimestamp(ctx, familyID, models.KindBath)
	if err != nil {
		return err
	}

	assessment, fire := services.AssessBath(now, lastBath, settings)
	if !fire {
		return nil
	}

	notification := services.BuildBathNotification(assessment, settings)
	scheduler.dispatch(ctx, familyID, clockBucket(now), *notification)
	return nil
}

// CheckActivities fires the play reminder, gated on the activity interval
// and on distance to the next feeding.
func (scheduler *Scheduler) CheckActivities(ctx context.Context) {
	familyIDs, err := scheduler.store.FamilyIDsWithActivityReminders(ctx)
	if err != nil {
		log.Printf("scheduler: activity tick: list families failed: %v", err)
		return
	}

	for _, familyID := range familyIDs {
		if err := scheduler.evaluateActivity(ctx, familyID); err != nil {
			log.Printf("scheduler: activity tick: family %d: %v", familyID, err)
		}
	}
}

func (scheduler *Scheduler) evaluateActivity(ctx context.Context, familyID uint) error {
	settings, err := scheduler.store.Settings(ctx, familyID)
	if err != nil {
		return err
	}

	lastActivity, err := scheduler.latestTimestamp(ctx, familyID, models.KindActivity)
	if err != nil {
		return err
	}
	lastFeeding, err := scheduler.latestTimestamp(ctx, familyID, models.KindFeeding)
	if err != nil {
		return err
	}

	now := scheduler.now().In(scheduler.location)
	assessment, fire := services.AssessActivity(now, lastActivity, lastFeeding, settings)
	if !fire {
		return nil
	}

	ageMonths := services.ResolveAgeMonths(settings, now)
	notification := services.BuildActivityNotification(assessment, ageMonths, services.ActivitiesForAge(ageMonths))

	bucket := "first:" + now.Format("2006-01-02")
	if assessment.HasActivityBaseline {
		bucket = "due:" + assessment.LastActivity.Format(time.RFC3339)
	}
	scheduler.dispatch(ctx, familyID, bucket, *notification)
	return nil
}

// MonitorSleep warns when an active sleep stretch outlasts the feeding
// interval. No dedup: the warning repeats every tick while the condition
// holds.
func (scheduler *Scheduler) MonitorSleep(ctx context.Context) {
	familyIDs, err := scheduler.store.FamilyIDsWithSleepMonitoring(ctx)
	if err != nil {
		log.Printf("scheduler: sleep tick: list families failed: %v", err)
		return
	}

	for _, familyID := range familyIDs {
		if err := scheduler.evaluateSleep(ctx, familyID); err != nil {
			log.Printf("scheduler: sleep tick: family %d: %v", familyID, err)
		}
	}
}

func (scheduler *Scheduler) evaluateSleep(ctx context.Context, familyID uint) error {
	session, found, err := scheduler.store.ActiveSleepSession(ctx, familyID)
	if err != nil || !found {
		return err
	}

	settings, err := scheduler.store.Settings(ctx, familyID)
	if err != nil {
		return err
	}

	now := scheduler.now().In(scheduler.location)
	if !services.ShouldWakeForFeeding(now, session.StartTime, settings.FeedIntervalHours) {
		return nil
	}

	notification := services.BuildSleepWarning(now, session, settings)
	scheduler.sendToFamily(ctx, familyID, *notification)
	return nil
}

// SendScheduledTips broadcasts the daily tip on each family's configured
// minute. The tick runs every minute so the exact-minute match cannot be
// skipped.
func (scheduler *Scheduler) SendScheduledTips(ctx context.Context) {
	familyIDs, err := scheduler.store.FamilyIDsWithTipsEnabled(ctx)
	if err != nil {
		log.Printf("scheduler: tips tick: list families failed: %v", err)
		return
	}

	now := scheduler.now().In(scheduler.location)
	for _, familyID := range familyIDs {
		settings, err := scheduler.store.Settings(ctx, familyID)
		if err != nil {
			log.Printf("scheduler: tips tick: family %d: %v", familyID, err)
			continue
		}
		if !services.ClockMinuteMatches(now, settings.TipsHour, settings.TipsMinute) {
			continue
		}

		notification := services.BuildTipNotification(scheduler.tips.Random())
		scheduler.dispatch(ctx, familyID, clockBucket(now), *notification)
	}
}

// latestTimestamp reads the category baseline. A stored zero timestamp is
// reported as missing so one bad row degrades to a first-time prompt instead
// of poisoning the category.
func (scheduler *Scheduler) latestTimestamp(ctx context.Context, familyID uint, kind string) (*time.Time, error) {
	event, found, err := scheduler.store.LatestEvent(ctx, familyID, kind)
	if err != nil {
		return nil, err
	}
	if !found || event.Timestamp.IsZero() {
		return nil, nil
	}
	timestamp := event.Timestamp.In(scheduler.location)
	return &timestamp, nil
}
