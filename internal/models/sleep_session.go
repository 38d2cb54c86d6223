package models

import "time"

// SleepSession tracks one stretch of sleep. At most one session per family
// may be active; starting a new one force-closes the previous.
type SleepSession struct {
	ID         uint       `gorm:"primaryKey"`
	FamilyID   uint       `gorm:"index;not null"`
	AuthorID   int64      `gorm:"not null"`
	AuthorRole string     `gorm:"not null;default:Родитель"`
	AuthorName string     `gorm:"not null;default:Неизвестно"`
	StartTime  time.Time  `gorm:"not null"`
	EndTime    *time.Time
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
}

func (session SleepSession) Duration(now time.Time) time.Duration {
	if session.EndTime != nil {
		return session.EndTime.Sub(session.StartTime)
	}
	return now.Sub(session.StartTime)
}
