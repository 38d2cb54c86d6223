package db

import "gorm.io/gorm"

type Repositories struct {
	Families      *FamilyRepository
	Events        *EventRepository
	SleepSessions *SleepRepository
	Settings      *SettingsRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Families:      NewFamilyRepository(database),
		Events:        NewEventRepository(database),
		SleepSessions: NewSleepRepository(database),
		Settings:      NewSettingsRepository(database),
	}
}
