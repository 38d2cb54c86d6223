package models

import "time"

const (
	KindFeeding    = "feeding"
	KindDiaper     = "diaper"
	KindBath       = "bath"
	KindActivity   = "activity"
	KindSleepStart = "sleep_start"
	KindSleepEnd   = "sleep_end"
)

const (
	ActivityTummyTime = "tummy_time"
	ActivityPlay      = "play"
	ActivityMassage   = "massage"
)

// Event is an immutable caregiving record. Ordering within a family is by
// Timestamp; rows are never updated after creation.
type Event struct {
	ID           uint      `gorm:"primaryKey"`
	FamilyID     uint      `gorm:"index:idx_events_family_kind;not null"`
	AuthorID     int64     `gorm:"not null"`
	AuthorRole   string    `gorm:"not null;default:Родитель"`
	AuthorName   string    `gorm:"not null;default:Неизвестно"`
	Kind         string    `gorm:"index:idx_events_family_kind;not null"`
	ActivityType string    `gorm:"not null;default:''"`
	Timestamp    time.Time `gorm:"index;not null"`
	CreatedAt    time.Time
}
