package models

const (
	DefaultFeedIntervalHours     = 3
	DefaultDiaperIntervalHours   = 2
	DefaultTipsHour              = 9
	DefaultTipsMinute            = 0
	DefaultBathHour              = 19
	DefaultBathMinute            = 0
	DefaultBathPeriodDays        = 1
	DefaultActivityIntervalHours = 2
)

// Settings holds per-family reminder configuration. Exactly one row exists
// per family; it is created in the same transaction as the family itself.
type Settings struct {
	FamilyID uint `gorm:"primaryKey"`

	FeedIntervalHours   int `gorm:"not null;default:3"`
	DiaperIntervalHours int `gorm:"not null;default:2"`

	TipsEnabled bool `gorm:"not null;default:true"`
	TipsHour    int  `gorm:"not null;default:9"`
	TipsMinute  int  `gorm:"not null;default:0"`

	BathReminderEnabled bool `gorm:"not null;default:true"`
	BathHour            int  `gorm:"not null;default:19"`
	BathMinute          int  `gorm:"not null;default:0"`
	BathPeriodDays      int  `gorm:"not null;default:1"`

	ActivityReminderEnabled bool `gorm:"not null;default:true"`
	ActivityIntervalHours   int  `gorm:"not null;default:2"`

	SleepMonitoringEnabled bool `gorm:"not null;default:true"`

	BabyAgeMonths int    `gorm:"not null;default:0"`
	BabyBirthDate string `gorm:"not null;default:''"`
}

func DefaultSettings(familyID uint) Settings {
	return Settings{
		FamilyID:                familyID,
		FeedIntervalHours:       DefaultFeedIntervalHours,
		DiaperIntervalHours:     DefaultDiaperIntervalHours,
		TipsEnabled:             true,
		TipsHour:                DefaultTipsHour,
		TipsMinute:              DefaultTipsMinute,
		BathReminderEnabled:     true,
		BathHour:                DefaultBathHour,
		BathMinute:              DefaultBathMinute,
		BathPeriodDays:          DefaultBathPeriodDays,
		ActivityReminderEnabled: true,
		ActivityIntervalHours:   DefaultActivityIntervalHours,
		SleepMonitoringEnabled:  true,
	}
}
