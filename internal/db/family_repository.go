package db

import (
	"errors"

	"github.com/terraincognita07/kroha/internal/models"
	"gorm.io/gorm"
)

var ErrFamilyNotFound = errors.New("family not found")

type FamilyRepository struct {
	database *gorm.DB
}

func NewFamilyRepository(database *gorm.DB) *FamilyRepository {
	return &FamilyRepository{database: database}
}

// Create inserts the family, its first caregiver and the settings row in one
// transaction. A family without a settings row must never exist.
func (repo *FamilyRepository) Create(family *models.Family, firstCaregiver *models.Caregiver) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(family).Error; err != nil {
			return err
		}

		firstCaregiver.FamilyID = family.ID
		if err := tx.Create(firstCaregiver).Error; err != nil {
			return err
		}

		settings := models.DefaultSettings(family.ID)
		return tx.Create(&settings).Error
	})
}

func (repo *FamilyRepository) FindByID(familyID uint) (models.Family, error) {
	family := models.Family{}
	result := repo.database.Where("id = ?", familyID).Limit(1).Find(&family)
	if result.Error != nil {
		return models.Family{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Family{}, ErrFamilyNotFound
	}
	return family, nil
}

func (repo *FamilyRepository) FindByInviteCode(code string) (models.Family, error) {
	family := models.Family{}
	result := repo.database.Where("invite_code = ?", code).Limit(1).Find(&family)
	if result.Error != nil {
		return models.Family{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Family{}, ErrFamilyNotFound
	}
	return family, nil
}

func (repo *FamilyRepository) MembersByFamily(familyID uint) ([]models.Caregiver, error) {
	members := make([]models.Caregiver, 0)
	if err := repo.database.
		Where("family_id = ?", familyID).
		Order("id ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (repo *FamilyRepository) MemberByTelegramID(telegramID int64) (models.Caregiver, bool, error) {
	member := models.Caregiver{}
	result := repo.database.Where("telegram_id = ?", telegramID).Limit(1).Find(&member)
	if result.Error != nil {
		return models.Caregiver{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Caregiver{}, false, nil
	}
	return member, true, nil
}

func (repo *FamilyRepository) AddMember(member *models.Caregiver) error {
	return repo.database.Create(member).Error
}

func (repo *FamilyRepository) UpdateMemberInfo(telegramID int64, role string, name string) error {
	return repo.database.Model(&models.Caregiver{}).
		Where("telegram_id = ?", telegramID).
		Updates(map[string]interface{}{"role": role, "name": name}).Error
}
