package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/kroha/internal/db"
	"github.com/terraincognita07/kroha/internal/models"
	"github.com/terraincognita07/kroha/internal/security"
)

var (
	ErrAlreadyMember     = errors.New("вы уже состоите в семье")
	ErrUnknownInviteCode = errors.New("семья не найдена")
)

const (
	inviteCodeLength   = 8
	inviteCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
)

type FamilyService struct {
	families *db.FamilyRepository
}

func NewFamilyService(families *db.FamilyRepository) *FamilyService {
	return &FamilyService{families: families}
}

// Create opens a new family for the caregiver. The invite code is random
// rather than the numeric family id, so codes cannot be guessed by counting.
func (service *FamilyService) Create(name string, telegramID int64, now time.Time) (models.Family, error) {
	if _, found, err := service.families.MemberByTelegramID(telegramID); err != nil {
		return models.Family{}, fmt.Errorf("check membership: %w", err)
	} else if found {
		return models.Family{}, ErrAlreadyMember
	}

	code, err := security.RandomString(inviteCodeLength, inviteCodeAlphabet)
	if err != nil {
		return models.Family{}, fmt.Errorf("generate invite code: %w", err)
	}

	family := models.Family{Name: name, InviteCode: code, CreatedAt: now}
	caregiver := models.Caregiver{
		TelegramID: telegramID,
		Role:       models.DefaultCaregiverRole,
		Name:       models.DefaultCaregiverName,
		CreatedAt:  now,
	}
	if err := service.families.Create(&family, &caregiver); err != nil {
		return models.Family{}, fmt.Errorf("create family: %w", err)
	}
	return family, nil
}

func (service *FamilyService) JoinByCode(code string, telegramID int64, now time.Time) (models.Family, error) {
	if _, found, err := service.families.MemberByTelegramID(telegramID); err != nil {
		return models.Family{}, fmt.Errorf("check membership: %w", err)
	} else if found {
		return models.Family{}, ErrAlreadyMember
	}

	family, err := service.families.FindByInviteCode(code)
	if err != nil {
		if errors.Is(err, db.ErrFamilyNotFound) {
			return models.Family{}, ErrUnknownInviteCode
		}
		return models.Family{}, fmt.Errorf("find family: %w", err)
	}

	caregiver := models.Caregiver{
		TelegramID: telegramID,
		FamilyID:   family.ID,
		Role:       models.DefaultCaregiverRole,
		Name:       models.DefaultCaregiverName,
		CreatedAt:  now,
	}
	if err := service.families.AddMember(&caregiver); err != nil {
		return models.Family{}, fmt.Errorf("add member: %w", err)
	}
	return family, nil
}

func (service *FamilyService) Members(familyID uint) ([]models.Caregiver, error) {
	return service.families.MembersByFamily(familyID)
}

func (service *FamilyService) SetMemberInfo(telegramID int64, role string, name string) error {
	return service.families.UpdateMemberInfo(telegramID, role, name)
}
