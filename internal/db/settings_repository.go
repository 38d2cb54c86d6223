package db

import (
	"github.com/terraincognita07/kroha/internal/models"
	"gorm.io/gorm"
)

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

// GetOrDefault never reports a missing row to the caller: a family without a
// settings row evaluates against the documented defaults.
func (repo *SettingsRepository) GetOrDefault(familyID uint) (models.Settings, error) {
	settings := models.Settings{}
	result := repo.database.
		Where("family_id = ?", familyID).
		Limit(1).
		Find(&settings)
	if result.Error != nil {
		return models.DefaultSettings(familyID), result.Error
	}
	if result.RowsAffected == 0 {
		return models.DefaultSettings(familyID), nil
	}
	return settings, nil
}

func (repo *SettingsRepository) Save(settings *models.Settings) error {
	return repo.database.Save(settings).Error
}

func (repo *SettingsRepository) UpdateIntervals(familyID uint, feedHours *int, diaperHours *int) error {
	updates := map[string]interface{}{}
	if feedHours != nil {
		updates["feed_interval_hours"] = *feedHours
	}
	if diaperHours != nil {
		updates["diaper_interval_hours"] = *diaperHours
	}
	if len(updates) == 0 {
		return nil
	}
	return repo.database.Model(&models.Settings{}).
		Where("family_id = ?", familyID).
		Updates(updates).Error
}

func (repo *SettingsRepository) UpdateTips(familyID uint, enabled *bool, hour *int, minute *int) error {
	updates := map[string]interface{}{}
	if enabled != nil {
		updates["tips_enabled"] = *enabled
	}
	if hour != nil {
		updates["tips_hour"] = *hour
	}
	if minute != nil {
		updates["tips_minute"] = *minute
	}
	if len(updates) == 0 {
		return nil
	}
	return repo.database.Model(&models.Settings{}).
		Where("family_id = ?", familyID).
		Updates(updates).Error
}

func (repo *SettingsRepository) UpdateBath(familyID uint, enabled *bool, hour *int, minute *int, periodDays *int) error {
	updates := map[string]interface{}{}
	if enabled != nil {
		updates["bath_reminder_enabled"] = *enabled
	}
	if hour != nil {
		updates["bath_hour"] = *hour
	}
	if minute != nil {
		updates["bath_minute"] = *minute
	}
	if periodDays != nil {
		updates["bath_period_days"] = *periodDays
	}
	if len(updates) == 0 {
		return nil
	}
	return repo.database.Model(&models.Settings{}).
		Where("family_id = ?", familyID).
		Updates(updates).Error
}

func (repo *SettingsRepository) UpdateActivity(familyID uint, enabled *bool, intervalHours *int, ageMonths *int) error {
	updates := map[string]interface{}{}
	if enabled != nil {
		updates["activity_reminder_enabled"] = *enabled
	}
	if intervalHours != nil {
		updates["activity_interval_hours"] = *intervalHours
	}
	if ageMonths != nil {
		updates["baby_age_months"] = *ageMonths
	}
	if len(updates) == 0 {
		return nil
	}
	return repo.database.Model(&models.Settings{}).
		Where("family_id = ?", familyID).
		Updates(updates).Error
}

func (repo *SettingsRepository) UpdateSleepMonitoring(familyID uint, enabled bool) error {
	return repo.database.Model(&models.Settings{}).
		Where("family_id = ?", familyID).
		Update("sleep_monitoring_enabled", enabled).Error
}

func (repo *SettingsRepository) UpdateBirthDate(familyID uint, birthDate string) error {
	return repo.database.Model(&models.Settings{}).
		Where("family_id = ?", familyID).
		Update("baby_birth_date", birthDate).Error
}

func (repo *SettingsRepository) FamilyIDsWithTipsEnabled() ([]uint, error) {
	return repo.familyIDsWithFlag("tips_enabled")
}

func (repo *SettingsRepository) FamilyIDsWithBathReminders() ([]uint, error) {
	return repo.familyIDsWithFlag("bath_reminder_enabled")
}

func (repo *SettingsRepository) FamilyIDsWithActivityReminders() ([]uint, error) {
	return repo.familyIDsWithFlag("activity_reminder_enabled")
}

func (repo *SettingsRepository) FamilyIDsWithSleepMonitoring() ([]uint, error) {
	return repo.familyIDsWithFlag("sleep_monitoring_enabled")
}

func (repo *SettingsRepository) familyIDsWithFlag(column string) ([]uint, error) {
	ids := make([]uint, 0)
	if err := repo.database.Model(&models.Settings{}).
		Where(column+" = ?", true).
		Pluck("family_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
