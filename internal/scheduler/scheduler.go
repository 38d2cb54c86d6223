// Package scheduler drives the reminder evaluators across all families on
// independent periodic cadences and routes the results to the notifier.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/terraincognita07/kroha/internal/models"
	"github.com/terraincognita07/kroha/internal/services"
)

// Store is the read surface the scheduler evaluates against, implemented by
// db.Store. Settings are never nil-like: a family without a row evaluates
// against defaults.
type Store interface {
	LatestEvent(ctx context.Context, familyID uint, kind string) (models.Event, bool, error)
	ActiveSleepSession(ctx context.Context, familyID uint) (models.SleepSession, bool, error)
	Settings(ctx context.Context, familyID uint) (models.Settings, error)
	Members(ctx context.Context, familyID uint) ([]models.Caregiver, error)
	FamilyIDsWithTipsEnabled(ctx context.Context) ([]uint, error)
	FamilyIDsWithBathReminders(ctx context.Context) ([]uint, error)
	FamilyIDsWithActivityReminders(ctx context.Context) ([]uint, error)
	FamilyIDsWithSleepMonitoring(ctx context.Context) ([]uint, error)
}

type Notifier interface {
	Send(ctx context.Context, chatID int64, notification services.Notification) error
}

type TipSource interface {
	Random() string
}

type Config struct {
	FeedingTick   time.Duration
	DiaperTick    time.Duration
	BathTick      time.Duration
	ActivityTick  time.Duration
	SleepTick     time.Duration
	TipsTick      time.Duration
	KeepAliveTick time.Duration
	TickTimeout   time.Duration
	ExternalURL   string
}

func DefaultConfig() Config {
	return Config{
		FeedingTick:   15 * time.Minute,
		DiaperTick:    15 * time.Minute,
		BathTick:      30 * time.Minute,
		ActivityTick:  15 * time.Minute,
		SleepTick:     15 * time.Minute,
		TipsTick:      time.Minute,
		KeepAliveTick: 3 * time.Minute,
		TickTimeout:   30 * time.Second,
	}
}

type Scheduler struct {
	store    Store
	notifier Notifier
	tips     TipSource
	location *time.Location
	config   Config

	cron    *cron.Cron
	markers *firedMarkers
	client  *http.Client

	// now is swapped out by tests to freeze the clock.
	now func() time.Time
}

func New(store Store, notifier Notifier, tips TipSource, location *time.Location, config Config) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	if config.TickTimeout <= 0 {
		config.TickTimeout = 30 * time.Second
	}
	return &Scheduler{
		store:    store,
		notifier: notifier,
		tips:     tips,
		location: location,
		config:   config,
		markers:  newFiredMarkers(),
		client:   &http.Client{Timeout: 10 * time.Second},
		now:      time.Now,
	}
}

// Start registers every cadence and begins ticking. Each category is its own
// cron entry: the cadences are independent and one slow tick must not delay
// the others.
func (scheduler *Scheduler) Start(ctx context.Context) error {
	scheduler.cron = cron.New(cron.WithLocation(scheduler.location))

	entries := []struct {
		name string
		tick time.Duration
		run  func(context.Context)
	}{
		{"feeding", scheduler.config.FeedingTick, scheduler.CheckFeedings},
		{"diaper", scheduler.config.DiaperTick, scheduler.CheckDiapers},
		{"bath", scheduler.config.BathTick, scheduler.CheckBaths},
		{"activity", scheduler.config.ActivityTick, scheduler.CheckActivities},
		{"sleep", scheduler.config.SleepTick, scheduler.MonitorSleep},
		{"tips", scheduler.config.TipsTick, scheduler.SendScheduledTips},
	}
	if scheduler.config.ExternalURL != "" {
		entries = append(entries, struct {
			name string
			tick time.Duration
			run  func(context.Context)
		}{"keepalive", scheduler.config.KeepAliveTick, scheduler.KeepAlive})
	}

	for _, entry := range entries {
		if entry.tick <= 0 {
			continue
		}
		run := entry.run
		spec := fmt.Sprintf("@every %s", entry.tick)
		if _, err := scheduler.cron.AddFunc(spec, func() {
			tickCtx, cancel := context.WithTimeout(ctx, scheduler.config.TickTimeout)
			defer cancel()
			run(tickCtx)
		}); err != nil {
			return fmt.Errorf("schedule %s job: %w", entry.name, err)
		}
	}

	scheduler.cron.Start()
	go func() {
		<-ctx.Done()
		scheduler.cron.Stop()
	}()
	return nil
}

// dispatch delivers one notification to every caregiver in the family,
// independently per recipient, and records the bucket only when at least one
// delivery succeeded, so a transient total failure is retried next tick.
func (scheduler *Scheduler) dispatch(ctx context.Context, familyID uint, bucket string, notification services.Notification) {
	if scheduler.markers.alreadyFired(notification.Category, familyID, bucket) {
		return
	}

	members, err := scheduler.store.Members(ctx, familyID)
	if err != nil {
		log.Printf("scheduler: load members for family %d failed: %v", familyID, err)
		return
	}
	if len(members) == 0 {
		return
	}

	correlationID := uuid.NewString()
	delivered := 0
	for _, member := range members {
		if err := scheduler.notifier.Send(ctx, member.TelegramID, notification); err != nil {
			log.Printf("scheduler: send %s [%s] to caregiver %d failed: %v",
				notification.Category, correlationID, member.TelegramID, err)
			continue
		}
		delivered++
	}

	if delivered > 0 {
		scheduler.markers.markFired(notification.Category, familyID, bucket)
		log.Printf("scheduler: sent %s [%s] severity=%s family=%d delivered=%d/%d",
			notification.Category, correlationID, notification.Severity, familyID, delivered, len(members))
	}
}

// sendToFamily delivers without dedup bookkeeping, for the sleep monitor
// which re-alerts on every tick while the condition holds.
func (scheduler *Scheduler) sendToFamily(ctx context.Context, familyID uint, notification services.Notification) {
	members, err := scheduler.store.Members(ctx, familyID)
	if err != nil {
		log.Printf("scheduler: load members for family %d failed: %v", familyID, err)
		return
	}

	correlationID := uuid.NewString()
	for _, member := range members {
		if err := scheduler.notifier.Send(ctx, member.TelegramID, notification); err != nil {
			log.Printf("scheduler: send %s [%s] to caregiver %d failed: %v",
				notification.Category, correlationID, member.TelegramID, err)
		}
	}
}

// KeepAlive pings the external URL so the hosting platform does not idle the
// process out.
func (scheduler *Scheduler) KeepAlive(ctx context.Context) {
	target := strings.TrimSuffix(scheduler.config.ExternalURL, "/") + "/ping"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		log.Printf("keepalive: build request: %v", err)
		return
	}
	resp, err := scheduler.client.Do(req)
	if err != nil {
		log.Printf("keepalive: ping %s failed: %v", target, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("keepalive: ping %s returned status %d", target, resp.StatusCode)
	}
}
