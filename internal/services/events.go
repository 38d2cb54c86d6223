package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/kroha/internal/db"
	"github.com/terraincognita07/kroha/internal/models"
)

// EventService records caregiving events on behalf of the chat layer. The
// minutesAgo shift lets a caregiver log something they did before picking up
// the phone.
type EventService struct {
	repos    *db.Repositories
	location *time.Location
	now      func() time.Time
}

func NewEventService(repos *db.Repositories, location *time.Location) *EventService {
	if location == nil {
		location = time.UTC
	}
	return &EventService{
		repos:    repos,
		location: location,
		now:      time.Now,
	}
}

func (service *EventService) timestamp(minutesAgo int) time.Time {
	return service.now().In(service.location).Add(-time.Duration(minutesAgo) * time.Minute)
}

func (service *EventService) LogFeeding(caregiver models.Caregiver, minutesAgo int) (models.Event, error) {
	return service.append(caregiver, models.KindFeeding, "", minutesAgo)
}

func (service *EventService) LogDiaper(caregiver models.Caregiver, minutesAgo int) (models.Event, error) {
	return service.append(caregiver, models.KindDiaper, "", minutesAgo)
}

func (service *EventService) LogBath(caregiver models.Caregiver, minutesAgo int) (models.Event, error) {
	return service.append(caregiver, models.KindBath, "", minutesAgo)
}

func (service *EventService) LogActivity(caregiver models.Caregiver, activityType string, minutesAgo int) (models.Event, error) {
	if activityType == "" {
		activityType = models.ActivityTummyTime
	}
	return service.append(caregiver, models.KindActivity, activityType, minutesAgo)
}

func (service *EventService) append(caregiver models.Caregiver, kind string, activityType string, minutesAgo int) (models.Event, error) {
	event := models.Event{
		FamilyID:     caregiver.FamilyID,
		AuthorID:     caregiver.TelegramID,
		AuthorRole:   caregiver.Role,
		AuthorName:   caregiver.Name,
		Kind:         kind,
		ActivityType: activityType,
		Timestamp:    service.timestamp(minutesAgo),
	}
	if err := service.repos.Events.Append(&event); err != nil {
		return models.Event{}, fmt.Errorf("append %s event: %w", kind, err)
	}
	return event, nil
}

// StartSleep opens a sleep session; a session left active is force-closed
// first, and the transition is mirrored into the event log.
func (service *EventService) StartSleep(caregiver models.Caregiver) (models.SleepSession, error) {
	session := models.SleepSession{
		FamilyID:   caregiver.FamilyID,
		AuthorID:   caregiver.TelegramID,
		AuthorRole: caregiver.Role,
		AuthorName: caregiver.Name,
		StartTime:  service.now().In(service.location),
	}
	if err := service.repos.SleepSessions.Start(&session); err != nil {
		return models.SleepSession{}, fmt.Errorf("start sleep session: %w", err)
	}
	if _, err := service.append(caregiver, models.KindSleepStart, "", 0); err != nil {
		return models.SleepSession{}, err
	}
	return session, nil
}

// EndSleep closes the active session and reports its duration; found is
// false when nothing was active.
func (service *EventService) EndSleep(caregiver models.Caregiver) (time.Duration, bool, error) {
	endTime := service.now().In(service.location)
	session, found, err := service.repos.SleepSessions.End(caregiver.FamilyID, endTime)
	if err != nil {
		return 0, false, fmt.Errorf("end sleep session: %w", err)
	}
	if !found {
		return 0, false, nil
	}
	if _, err := service.append(caregiver, models.KindSleepEnd, "", 0); err != nil {
		return 0, false, err
	}
	return session.Duration(endTime), true, nil
}
