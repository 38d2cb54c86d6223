package models

import "time"

const (
	DefaultCaregiverRole = "Родитель"
	DefaultCaregiverName = "Неизвестно"
)

type Family struct {
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"not null"`
	InviteCode string    `gorm:"uniqueIndex;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

type Caregiver struct {
	ID         uint      `gorm:"primaryKey"`
	TelegramID int64     `gorm:"uniqueIndex;not null"`
	FamilyID   uint      `gorm:"index;not null"`
	Role       string    `gorm:"not null;default:Родитель"`
	Name       string    `gorm:"not null;default:Неизвестно"`
	CreatedAt  time.Time `gorm:"not null"`
}
