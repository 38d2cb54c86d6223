package services

import (
	"time"

	"github.com/terraincognita07/kroha/internal/models"
)

// Average days per month used for display-friendly age math. The value is
// part of the observable contract (44 days after birth reads as 1 month), so
// calendar-month arithmetic must not replace it.
const averageDaysPerMonth = 30.44

const birthDateLayout = "2006-01-02"

// AgeMonths converts a stored YYYY-MM-DD birth date into whole months as of
// now. Empty or unparseable input yields 0, as does a date in the future.
func AgeMonths(birthDate string, now time.Time) int {
	if birthDate == "" {
		return 0
	}
	parsed, err := time.ParseInLocation(birthDateLayout, birthDate, now.Location())
	if err != nil {
		return 0
	}

	days := int(DateAtLocation(now, now.Location()).Sub(parsed).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(float64(days) / averageDaysPerMonth)
}

// ResolveAgeMonths prefers the birth date, recomputed on every evaluation,
// over the manually stored month count.
func ResolveAgeMonths(settings models.Settings, now time.Time) int {
	if settings.BabyBirthDate != "" {
		return AgeMonths(settings.BabyBirthDate, now)
	}
	return settings.BabyAgeMonths
}

// AgeActivities holds the three suggestion lines shown with a play reminder.
type AgeActivities struct {
	TummyTime string
	Play      string
	Massage   string
}

// ActivitiesForAge maps an age in months onto one of five fixed bands.
func ActivitiesForAge(ageMonths int) AgeActivities {
	switch {
	case ageMonths < 1:
		return AgeActivities{
			TummyTime: "Выкладывание на живот 2-3 раза в день по 3-5 минут",
			Play:      "Черно-белые картинки, погремушки на расстоянии 20-30 см",
			Massage:   "Легкий массаж ручек и ножек",
		}
	case ageMonths < 3:
		return AgeActivities{
			TummyTime: "Выкладывание на живот 3-4 раза в день по 5-10 минут",
			Play:      "Цветные игрушки, подвесные мобили, песенки",
			Massage:   "Массаж всего тела, гимнастика",
		}
	case ageMonths < 6:
		return AgeActivities{
			TummyTime: "Выкладывание на живот 4-5 раз в день по 10-15 минут",
			Play:      "Игрушки для хватания, зеркало, прятки",
			Massage:   "Активная гимнастика, упражнения на перевороты",
		}
	case ageMonths < 9:
		return AgeActivities{
			TummyTime: "Ползание, упражнения на координацию",
			Play:      "Пирамидки, кубики, игры в прятки",
			Massage:   "Упражнения для подготовки к ходьбе",
		}
	default:
		return AgeActivities{
			TummyTime: "Ходьба с поддержкой, активные игры",
			Play:      "Строительство, рисование, ролевые игры",
			Massage:   "Спортивные упражнения, танцы",
		}
	}
}
