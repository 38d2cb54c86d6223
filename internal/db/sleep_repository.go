package db

import (
	"time"

	"github.com/terraincognita07/kroha/internal/models"
	"gorm.io/gorm"
)

type SleepRepository struct {
	database *gorm.DB
}

func NewSleepRepository(database *gorm.DB) *SleepRepository {
	return &SleepRepository{database: database}
}

func (repo *SleepRepository) ActiveByFamily(familyID uint) (models.SleepSession, bool, error) {
	session := models.SleepSession{}
	result := repo.database.
		Where("family_id = ? AND is_active = ?", familyID, true).
		Order("start_time DESC, id DESC").
		Limit(1).
		Find(&session)
	if result.Error != nil {
		return models.SleepSession{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.SleepSession{}, false, nil
	}
	return session, true, nil
}

// Start opens a new session. Any session still active for the family is
// closed first with end_time set to the new start, so a single active
// session per family holds even when a caregiver forgot to end the last one.
func (repo *SleepRepository) Start(session *models.SleepSession) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.SleepSession{}).
			Where("family_id = ? AND is_active = ?", session.FamilyID, true).
			Updates(map[string]interface{}{
				"is_active": false,
				"end_time":  session.StartTime,
			}).Error; err != nil {
			return err
		}
		session.IsActive = true
		return tx.Create(session).Error
	})
}

// End closes the active session and reports it; found is false when no
// session was active.
func (repo *SleepRepository) End(familyID uint, endTime time.Time) (models.SleepSession, bool, error) {
	session, found, err := repo.ActiveByFamily(familyID)
	if err != nil || !found {
		return models.SleepSession{}, false, err
	}

	session.IsActive = false
	session.EndTime = &endTime
	if err := repo.database.Model(&session).
		Select("is_active", "end_time").
		Updates(&session).Error; err != nil {
		return models.SleepSession{}, false, err
	}
	return session, true, nil
}

func (repo *SleepRepository) ListByFamily(familyID uint, limit int) ([]models.SleepSession, error) {
	sessions := make([]models.SleepSession, 0)
	query := repo.database.
		Where("family_id = ?", familyID).
		Order("start_time DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
