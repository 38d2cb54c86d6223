package db

import (
	"time"

	"github.com/terraincognita07/kroha/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	database *gorm.DB
}

func NewEventRepository(database *gorm.DB) *EventRepository {
	return &EventRepository{database: database}
}

func (repo *EventRepository) Append(event *models.Event) error {
	return repo.database.Create(event).Error
}

// LatestByFamilyAndKind returns the newest event of the given kind, the
// baseline for elapsed-time math.
func (repo *EventRepository) LatestByFamilyAndKind(familyID uint, kind string) (models.Event, bool, error) {
	event := models.Event{}
	result := repo.database.
		Where("family_id = ? AND kind = ?", familyID, kind).
		Order("timestamp DESC, id DESC").
		Limit(1).
		Find(&event)
	if result.Error != nil {
		return models.Event{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Event{}, false, nil
	}
	return event, true, nil
}

func (repo *EventRepository) LatestActivity(familyID uint, activityType string) (models.Event, bool, error) {
	event := models.Event{}
	result := repo.database.
		Where("family_id = ? AND kind = ? AND activity_type = ?", familyID, models.KindActivity, activityType).
		Order("timestamp DESC, id DESC").
		Limit(1).
		Find(&event)
	if result.Error != nil {
		return models.Event{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Event{}, false, nil
	}
	return event, true, nil
}

func (repo *EventRepository) ListByFamilyKindDay(familyID uint, kind string, dayStart time.Time, dayEnd time.Time) ([]models.Event, error) {
	events := make([]models.Event, 0)
	if err := repo.database.
		Where("family_id = ? AND kind = ? AND timestamp >= ? AND timestamp < ?", familyID, kind, dayStart, dayEnd).
		Order("timestamp ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *EventRepository) DeleteByID(familyID uint, eventID uint) error {
	return repo.database.
		Where("family_id = ?", familyID).
		Delete(&models.Event{}, eventID).Error
}
