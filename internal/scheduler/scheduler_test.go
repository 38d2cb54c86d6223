package scheduler

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/terraincognita07/kroha/internal/models"
	"github.com/terraincognita07/kroha/internal/services"
)

type fakeStore struct {
	familyIDs []uint
	settings  map[uint]models.Settings
	events    map[string]models.Event
	sleep     map[uint]models.SleepSession
	members   map[uint][]models.Caregiver
}

func newFakeStore(familyID uint, chatIDs ...int64) *fakeStore {
	caregivers := make([]models.Caregiver, 0, len(chatIDs))
	for _, chatID := range chatIDs {
		caregivers = append(caregivers, models.Caregiver{FamilyID: familyID, TelegramID: chatID})
	}
	return &fakeStore{
		familyIDs: []uint{familyID},
		settings:  map[uint]models.Settings{familyID: models.DefaultSettings(familyID)},
		events:    map[string]models.Event{},
		sleep:     map[uint]models.SleepSession{},
		members:   map[uint][]models.Caregiver{familyID: caregivers},
	}
}

func (store *fakeStore) setLatest(familyID uint, kind string, timestamp time.Time) {
	store.events[eventKey(familyID, kind)] = models.Event{FamilyID: familyID, Kind: kind, Timestamp: timestamp}
}

func eventKey(familyID uint, kind string) string {
	return fmt.Sprintf("%d:%s", familyID, kind)
}

func (store *fakeStore) LatestEvent(_ context.Context, familyID uint, kind string) (models.Event, bool, error) {
	event, ok := store.events[eventKey(familyID, kind)]
	return event, ok, nil
}

func (store *fakeStore) ActiveSleepSession(_ context.Context, familyID uint) (models.SleepSession, bool, error) {
	session, ok := store.sleep[familyID]
	return session, ok, nil
}

func (store *fakeStore) Settings(_ context.Context, familyID uint) (models.Settings, error) {
	return store.settings[familyID], nil
}

func (store *fakeStore) Members(_ context.Context, familyID uint) ([]models.Caregiver, error) {
	return store.members[familyID], nil
}

func (store *fakeStore) FamilyIDsWithTipsEnabled(context.Context) ([]uint, error) {
	return store.familyIDs, nil
}

func (store *fakeStore) FamilyIDsWithBathReminders(context.Context) ([]uint, error) {
	return store.familyIDs, nil
}

func (store *fakeStore) FamilyIDsWithActivityReminders(context.Context) ([]uint, error) {
	return store.familyIDs, nil
}

func (store *fakeStore) FamilyIDsWithSleepMonitoring(context.Context) ([]uint, error) {
	return store.familyIDs, nil
}

type sentMessage struct {
	chatID       int64
	notification services.Notification
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[int64]bool
}

func (notifier *fakeNotifier) Send(_ context.Context, chatID int64, notification services.Notification) error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	if notifier.failFor[chatID] {
		return context.DeadlineExceeded
	}
	notifier.sent = append(notifier.sent, sentMessage{chatID: chatID, notification: notification})
	return nil
}

func (notifier *fakeNotifier) count() int {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return len(notifier.sent)
}

func (notifier *fakeNotifier) last(t *testing.T) sentMessage {
	t.Helper()
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.sent) == 0 {
		t.Fatal("no messages sent")
	}
	return notifier.sent[len(notifier.sent)-1]
}

type staticTips struct{ tip string }

func (tips staticTips) Random() string { return tips.tip }

func newTestScheduler(store Store, notifier Notifier) *Scheduler {
	return New(store, notifier, staticTips{tip: "совет"}, time.UTC, DefaultConfig())
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, time.UTC)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func freeze(scheduler *Scheduler, moment time.Time) {
	scheduler.now = func() time.Time { return moment }
}

func TestCheckFeedingsFiresOncePerBand(t *testing.T) {
	t.Parallel()

	store := newFakeStore(1, 100)
	baseline := at(t, "2026-03-01 10:00")
	store.setLatest(1, models.KindFeeding, baseline)

	notifier := &fakeNotifier{}
	scheduler := newTestScheduler(store, notifier)
	ctx := context.Background()

	// Inside the due window: first tick fires, the repeat does not.
	freeze(scheduler, at(t, "2026-03-01 13:05"))
	scheduler.CheckFeedings(ctx)
	if notifier.count() != 1 {
		t.Fatalf("sent %d messages after first due tick, want 1", notifier.count())
	}
	if notifier.last(t).notification.Severity != services.SeverityDue {
		t.Fatalf("severity = %s, want due", notifier.last(t).notification.Severity)
	}

	freeze(scheduler, at(t, "2026-03-01 13:20"))
	scheduler.CheckFeedings(ctx)
	if notifier.count() != 1 {
		t.Fatalf("repeat tick inside the band resent, count = %d", notifier.count())
	}

	// Quiet gap: no message at all.
	freeze(scheduler, at(t, "2026-03-01 13:45"))
	scheduler.CheckFeedings(ctx)
	if notifier.count() != 1 {
		t.Fatalf("quiet gap produced a send, count = %d", notifier.count())
	}

	// Crossing into overdue is a new alert instance.
	freeze(scheduler, at(t, "2026-03-01 14:10"))
	scheduler.CheckFeedings(ctx)
	if notifier.count() != 2 {
		t.Fatalf("overdue transition sent %d total, want 2", notifier.count())
	}
	if notifier.last(t).notification.Severity != services.SeverityUrgent {
		t.Fatalf("overdue severity = %s, want urgent", notifier.last(t).notification.Severity)
	}

	freeze(scheduler, at(t, "2026-03-01 14:25"))
	scheduler.CheckFeedings(ctx)
	if notifier.count() != 2 {
		t.Fatalf("overdue repeat resent, count = %d", notifier.count())
	}

	// A fresh feeding resets the cycle; the next due window fires again.
	store.setLatest(1, models.KindFeeding, at(t, "2026-03-01 14:30"))
	freeze(scheduler, at(t, "2026-03-01 17:35"))
	scheduler.CheckFeedings(ctx)
	if notifier.count() != 3 {
		t.Fatalf("new baseline did not re-arm, count = %d", notifier.count())
	}
}

func TestCheckFeedingsFirstTimePromptOncePerDay(t *testing.T) {
	t.Parallel()

	store := newFakeStore(2, 100)
	notifier := &fakeNotifier{}
	scheduler := newTestScheduler(store, notifier)
	ctx := context.Background()

	freeze(scheduler, at(t, "2026-03-01 09:00"))
	scheduler.CheckFeedings(ctx)
	freeze(scheduler, at(t, "2026-03-01 18:00"))
	scheduler.CheckFeedings(ctx)
	if notifier.count() != 1 {
		t.Fatalf("first-time prompt sent %d times in one day, want 1", notifier.count())
	}

	freeze(scheduler, at(t, "2026-03-02 09:00"))
	scheduler.CheckFeedings(ctx)
	if notifier.count() != 2 {
		t.Fatalf("next-day prompt missing, count = %d", notifier.count())
	}
}

func TestDispatchIsolatesRecipientFailures(t *testing.T) {
	t.Parallel()

	store := newFakeStore(3, 100, 200)
	store.setLatest(3, models.KindFeeding, at(t, "2026-03-01 10:00"))

	notifier := &fakeNotifier{failFor: map[int64]bool{100: true}}
	scheduler := newTestScheduler(store, notifier)
	ctx := context.Background()

	freeze(scheduler, at(t, "2026-03-01 13:05"))
	scheduler.CheckFeedings(ctx)
	if notifier.count() != 1 {
		t.Fatalf("sent %d messages, want 1 to the healthy recipient", notifier.count())
	}
	if notifier.last(t).chatID != 200 {
		t.Fatalf("delivered to chat %d, want 200", notifier.last(t).chatID)
	}

	// Partial delivery still counts as fired.
	freeze(scheduler, at(t, "2026-03-01 13:20"))
	scheduler.CheckFeedings(ctx)
	if notifier.count() != 1 {
		t.Fatalf("partially delivered alert resent, count = %d", notifier.count())
	}
}

func TestDispatchRetriesAfterTotalFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore(4, 100)
	store.setLatest(4, models.KindFeeding, at(t, "2026-03-01 10:00"))

	notifier := &fakeNotifier{failFor: map[int64]bool{100: true}}
	scheduler := newTestScheduler(store, notifier)
	ctx := context.Background()

	freeze(scheduler, at(t, "2026-03-01 13:05"))
	scheduler.CheckFeedings(ctx)
	if notifier.count() != 0 {
		t.Fatalf("total failure still recorded %d sends", notifier.count())
	}

	// Delivery recovers; the same band is retried because nothing was marked.
	notifier.failFor = nil
	freeze(scheduler, at(t, "2026-03-01 13:20"))
	scheduler.CheckFeedings(ctx)
	if notifier.count() != 1 {
		t.Fatalf("recovered tick sent %d, want 1", notifier.count())
	}
}

func TestMonitorSleepRepeatsEveryTick(t *testing.T) {
	t.Parallel()

	store := newFakeStore(5, 100)
	store.sleep[5] = models.SleepSession{
		FamilyID:  5,
		StartTime: at(t, "2026-03-01 10:00"),
		IsActive:  true,
	}

	notifier := &fakeNotifier{}
	scheduler := newTestScheduler(store, notifier)
	ctx := context.Background()

	freeze(scheduler, at(t, "2026-03-01 12:00"))
	scheduler.MonitorSleep(ctx)
	if notifier.count() != 0 {
		t.Fatalf("warned before the feeding interval elapsed, count = %d", notifier.count())
	}

	freeze(scheduler, at(t, "2026-03-01 13:15"))
	scheduler.MonitorSleep(ctx)
	freeze(scheduler, at(t, "2026-03-01 13:30"))
	scheduler.MonitorSleep(ctx)
	if notifier.count() != 2 {
		t.Fatalf("sleep warning must repeat every tick, count = %d", notifier.count())
	}

	// Session ends; the warning stops.
	delete(store.sleep, 5)
	freeze(scheduler, at(t, "2026-03-01 13:45"))
	scheduler.MonitorSleep(ctx)
	if notifier.count() != 2 {
		t.Fatalf("warning after session ended, count = %d", notifier.count())
	}
}

func TestSendScheduledTipsExactMinuteOnly(t *testing.T) {
	t.Parallel()

	store := newFakeStore(6, 100)
	notifier := &fakeNotifier{}
	scheduler := newTestScheduler(store, notifier)
	ctx := context.Background()

	// Default tips time is 09:00.
	freeze(scheduler, at(t, "2026-03-01 08:59"))
	scheduler.SendScheduledTips(ctx)
	freeze(scheduler, at(t, "2026-03-01 09:01"))
	scheduler.SendScheduledTips(ctx)
	if notifier.count() != 0 {
		t.Fatalf("tip sent off the configured minute, count = %d", notifier.count())
	}

	freeze(scheduler, at(t, "2026-03-01 09:00"))
	scheduler.SendScheduledTips(ctx)
	scheduler.SendScheduledTips(ctx)
	if notifier.count() != 1 {
		t.Fatalf("tip sent %d times on the minute, want exactly 1", notifier.count())
	}
	if notifier.last(t).notification.Text != "совет" {
		t.Fatalf("tip text = %q", notifier.last(t).notification.Text)
	}

	freeze(scheduler, at(t, "2026-03-02 09:00"))
	scheduler.SendScheduledTips(ctx)
	if notifier.count() != 2 {
		t.Fatalf("next-day tip missing, count = %d", notifier.count())
	}
}

func TestCheckBathsDedupedWithinTheMinute(t *testing.T) {
	t.Parallel()

	store := newFakeStore(7, 100)
	store.setLatest(7, models.KindBath, at(t, "2026-02-27 19:00"))

	notifier := &fakeNotifier{}
	scheduler := newTestScheduler(store, notifier)
	ctx := context.Background()

	// Default bath time is 19:00 with a one-day period.
	freeze(scheduler, at(t, "2026-03-01 19:00"))
	scheduler.CheckBaths(ctx)
	scheduler.CheckBaths(ctx)
	if notifier.count() != 1 {
		t.Fatalf("bath reminder sent %d times, want 1", notifier.count())
	}
	if notifier.last(t).notification.Category != services.CategoryBath {
		t.Fatalf("category = %s, want bath", notifier.last(t).notification.Category)
	}

	freeze(scheduler, at(t, "2026-03-01 19:30"))
	scheduler.CheckBaths(ctx)
	if notifier.count() != 1 {
		t.Fatalf("bath reminder fired off the configured minute, count = %d", notifier.count())
	}
}

func TestCheckActivitiesRespectsFeedingGate(t *testing.T) {
	t.Parallel()

	store := newFakeStore(8, 100)
	notifier := &fakeNotifier{}
	scheduler := newTestScheduler(store, notifier)
	ctx := context.Background()

	// No feeding logged yet: the gate cannot be evaluated, nothing fires.
	freeze(scheduler, at(t, "2026-03-01 12:00"))
	scheduler.CheckActivities(ctx)
	if notifier.count() != 0 {
		t.Fatalf("activity fired without a feeding baseline, count = %d", notifier.count())
	}

	// Fed at 10:00, interval 3h: at 12:00 the next feeding is an hour away,
	// so the first-activity prompt goes out, once.
	store.setLatest(8, models.KindFeeding, at(t, "2026-03-01 10:00"))
	scheduler.CheckActivities(ctx)
	scheduler.CheckActivities(ctx)
	if notifier.count() != 1 {
		t.Fatalf("first-activity prompt sent %d times, want 1", notifier.count())
	}

	// Activity logged; inside the two-hour interval nothing fires.
	store.setLatest(8, models.KindActivity, at(t, "2026-03-01 12:05"))
	store.setLatest(8, models.KindFeeding, at(t, "2026-03-01 13:00"))
	freeze(scheduler, at(t, "2026-03-01 13:30"))
	scheduler.CheckActivities(ctx)
	if notifier.count() != 1 {
		t.Fatalf("activity fired inside its interval, count = %d", notifier.count())
	}

	// Interval elapsed and the next feeding is far enough away.
	freeze(scheduler, at(t, "2026-03-01 14:30"))
	scheduler.CheckActivities(ctx)
	if notifier.count() != 2 {
		t.Fatalf("due activity reminder missing, count = %d", notifier.count())
	}
}

func TestIntervalBucket(t *testing.T) {
	t.Parallel()

	now := at(t, "2026-03-01 13:05")
	baseline := at(t, "2026-03-01 10:00")

	due := services.AssessInterval(now, &baseline, 3)
	overdue := services.AssessInterval(at(t, "2026-03-01 14:10"), &baseline, 3)
	if intervalBucket(due, now) == intervalBucket(overdue, now) {
		t.Fatal("band transition must produce a distinct bucket")
	}

	later := at(t, "2026-03-01 14:30")
	rearmed := services.AssessInterval(at(t, "2026-03-01 17:35"), &later, 3)
	if intervalBucket(due, now) == intervalBucket(rearmed, now) {
		t.Fatal("a fresh baseline must produce a distinct bucket")
	}

	missing := services.AssessInterval(now, nil, 3)
	if got := intervalBucket(missing, now); got != "first:2026-03-01" {
		t.Fatalf("no-baseline bucket = %q", got)
	}
}
