package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/kroha/internal/models"
)

type Severity string

const (
	SeverityInfo   Severity = "info"
	SeverityDue    Severity = "due"
	SeverityUrgent Severity = "urgent"
)

const (
	CategoryFeeding  = "feeding"
	CategoryDiaper   = "diaper"
	CategoryBath     = "bath"
	CategoryActivity = "activity"
	CategorySleep    = "sleep"
	CategoryTips     = "tips"
)

type QuickAction struct {
	Label  string
	Action string
}

// Notification is the structured payload handed to the notifier. Urgent
// messages carry no quick actions; the caregiver should act, not tap.
type Notification struct {
	Category string
	Severity Severity
	Text     string
	Actions  []QuickAction
}

// BuildFeedingNotification renders the feeding assessment into a payload, or
// nil for the NotDue status and the quiet band.
func BuildFeedingNotification(assessment IntervalAssessment, settings models.Settings) *Notification {
	switch assessment.Status {
	case StatusNoBaseline:
		return &Notification{
			Category: CategoryFeeding,
			Severity: SeverityInfo,
			Text: fmt.Sprintf(
				"🍼 Первое кормление!\n\n"+
					"👶 Пора начать отслеживать кормления\n"+
					"🔄 Рекомендуемый интервал: %d ч.\n\n"+
					"💡 Запишите первое кормление!",
				settings.FeedIntervalHours),
			Actions: []QuickAction{{Label: "🍼 Кормить сейчас", Action: "feed_now"}},
		}
	case StatusUpcoming:
		return &Notification{
			Category: CategoryFeeding,
			Severity: SeverityInfo,
			Text: fmt.Sprintf(
				"⏰ Скоро время кормления\n\n"+
					"⏰ Прошло: %.1f ч. (%.0f мин.) с последнего кормления\n"+
					"📅 Последнее кормление: %s\n"+
					"🔄 Интервал: %d ч.\n\n"+
					"💡 Через %.1f ч. пора будет кормить малыша",
				assessment.Elapsed.Hours(), assessment.Elapsed.Minutes(),
				assessment.Baseline.Format("15:04"),
				settings.FeedIntervalHours,
				assessment.Remaining().Hours()),
		}
	case StatusDue:
		return &Notification{
			Category: CategoryFeeding,
			Severity: SeverityDue,
			Text: fmt.Sprintf(
				"🍼 Время кормления!\n\n"+
					"⏰ Прошло: %.1f ч. (%.0f мин.) с последнего кормления\n"+
					"📅 Последнее кормление: %s\n"+
					"🔄 Интервал: %d ч.\n\n"+
					"💡 Пора покормить малыша!\n\n"+
					"🔄 Нажмите кнопку ниже, чтобы зафиксировать кормление:",
				assessment.Elapsed.Hours(), assessment.Elapsed.Minutes(),
				assessment.Baseline.Format("15:04"),
				settings.FeedIntervalHours),
			Actions: []QuickAction{
				{Label: "🍼 Кормить сейчас", Action: "feed_now"},
				{Label: "15 мин назад", Action: "feed_15"},
				{Label: "30 мин назад", Action: "feed_30"},
			},
		}
	case StatusOverdue:
		return &Notification{
			Category: CategoryFeeding,
			Severity: SeverityUrgent,
			Text: fmt.Sprintf(
				"🚨 СРОЧНО! Долго не кормили!\n\n"+
					"⏰ Прошло: %.1f ч. (%.0f мин.) с последнего кормления\n"+
					"📅 Последнее кормление: %s\n"+
					"🔄 Интервал: %d ч.\n\n"+
					"⚠️ Малыш может быть голоден! Немедленно покормите!",
				assessment.Elapsed.Hours(), assessment.Elapsed.Minutes(),
				assessment.Baseline.Format("15:04"),
				settings.FeedIntervalHours),
		}
	default:
		return nil
	}
}

// BuildDiaperNotification mirrors the feeding shape with diaper texts.
func BuildDiaperNotification(assessment IntervalAssessment, settings models.Settings) *Notification {
	switch assessment.Status {
	case StatusNoBaseline:
		return &Notification{
			Category: CategoryDiaper,
			Severity: SeverityInfo,
			Text: fmt.Sprintf(
				"💩 Первая смена подгузника!\n\n"+
					"👶 Пора начать отслеживать смены подгузника\n"+
					"🔄 Рекомендуемый интервал: %d ч.\n\n"+
					"💡 Запишите первую смену!",
				settings.DiaperIntervalHours),
			Actions: []QuickAction{{Label: "💩 Сменить сейчас", Action: "diaper_now"}},
		}
	case StatusUpcoming:
		return &Notification{
			Category: CategoryDiaper,
			Severity: SeverityInfo,
			Text: fmt.Sprintf(
				"⏰ Скоро смена подгузника\n\n"+
					"⏰ Прошло: %.1f ч. (%.0f мин.) с последней смены\n"+
					"📅 Последняя смена: %s\n"+
					"🔄 Интервал: %d ч.\n\n"+
					"💡 Через %.1f ч. пора будет сменить подгузник",
				assessment.Elapsed.Hours(), assessment.Elapsed.Minutes(),
				assessment.Baseline.Format("15:04"),
				settings.DiaperIntervalHours,
				assessment.Remaining().Hours()),
		}
	case StatusDue:
		return &Notification{
			Category: CategoryDiaper,
			Severity: SeverityDue,
			Text: fmt.Sprintf(
				"💩 Время смены подгузника!\n\n"+
					"⏰ Прошло: %.1f ч. (%.0f мин.) с последней смены\n"+
					"📅 Последняя смена: %s\n"+
					"🔄 Интервал: %d ч.\n\n"+
					"💡 Пора сменить подгузник малышу!\n\n"+
					"🔄 Нажмите кнопку ниже, чтобы зафиксировать смену:",
				assessment.Elapsed.Hours(), assessment.Elapsed.Minutes(),
				assessment.Baseline.Format("15:04"),
				settings.DiaperIntervalHours),
			Actions: []QuickAction{
				{Label: "💩 Сменить сейчас", Action: "diaper_now"},
				{Label: "15 мин назад", Action: "diaper_15"},
				{Label: "30 мин назад", Action: "diaper_30"},
			},
		}
	case StatusOverdue:
		return &Notification{
			Category: CategoryDiaper,
			Severity: SeverityUrgent,
			Text: fmt.Sprintf(
				"🚨 СРОЧНО! Долго не меняли подгузник!\n\n"+
					"⏰ Прошло: %.1f ч. (%.0f мин.) с последней смены\n"+
					"📅 Последняя смена: %s\n"+
					"🔄 Интервал: %d ч.\n\n"+
					"⚠️ Немедленно проверьте подгузник!",
				assessment.Elapsed.Hours(), assessment.Elapsed.Minutes(),
				assessment.Baseline.Format("15:04"),
				settings.DiaperIntervalHours),
		}
	default:
		return nil
	}
}

func BuildBathNotification(assessment BathAssessment, settings models.Settings) *Notification {
	if !assessment.HasBaseline {
		return &Notification{
			Category: CategoryBath,
			Severity: SeverityInfo,
			Text: fmt.Sprintf(
				"🛁 Первое купание!\n\n"+
					"👶 Пора начать купать малыша\n"+
					"🔄 Период: %d день(ей)\n\n"+
					"💡 Запишите первое купание!",
				settings.BathPeriodDays),
			Actions: []QuickAction{{Label: "🛁 Купать сейчас", Action: "bath_now"}},
		}
	}

	return &Notification{
		Category: CategoryBath,
		Severity: SeverityDue,
		Text: fmt.Sprintf(
			"🛁 Время купания!\n\n"+
				"⏰ Прошло: %d дней с последнего купания\n"+
				"📅 Последнее купание: %s\n"+
				"🔄 Период: %d день(ей)\n\n"+
				"💡 Пора искупать малыша!\n\n"+
				"🔄 Нажмите кнопку ниже, чтобы зафиксировать купание:",
			assessment.DaysSince,
			assessment.LastBath.Format("02.01 в 15:04"),
			settings.BathPeriodDays),
		Actions: []QuickAction{
			{Label: "🛁 Купать сейчас", Action: "bath_now"},
			{Label: "15 мин назад", Action: "bath_15"},
			{Label: "30 мин назад", Action: "bath_30"},
		},
	}
}

func BuildActivityNotification(assessment ActivityAssessment, ageMonths int, activities AgeActivities) *Notification {
	suggestions := fmt.Sprintf(
		"💡 Рекомендации для вашего возраста:\n"+
			"🦵 Выкладывание на живот: %s\n"+
			"🎯 Игры: %s\n"+
			"💆 Массаж: %s",
		activities.TummyTime, activities.Play, activities.Massage)

	actions := []QuickAction{
		{Label: "🦵 Выкладывание на живот", Action: "activity_tummy"},
		{Label: "🎯 Играть сейчас", Action: "activity_play"},
		{Label: "💆 Массаж", Action: "activity_massage"},
	}

	if !assessment.HasActivityBaseline {
		return &Notification{
			Category: CategoryActivity,
			Severity: SeverityInfo,
			Text: fmt.Sprintf(
				"🎮 Первая активность!\n\n"+
					"👶 Пора начать играть с малышом\n"+
					"🔄 Рекомендуемый интервал: %d ч.\n"+
					"👶 Возраст: %d мес.\n"+
					"🍼 До следующего кормления: %.0f мин.\n\n"+
					"%s\n\n"+
					"🔄 Начните с выкладывания на живот!",
				assessment.IntervalHours, ageMonths, assessment.MinutesUntilFeeding, suggestions),
			Actions: actions,
		}
	}

	return &Notification{
		Category: CategoryActivity,
		Severity: SeverityDue,
		Text: fmt.Sprintf(
			"🎮 Время игр и активностей!\n\n"+
				"⏰ Прошло: %.1f ч. с последней активности\n"+
				"📅 Последняя активность: %s\n"+
				"🔄 Интервал: %d ч.\n"+
				"👶 Возраст: %d мес.\n"+
				"🍼 До следующего кормления: %.0f мин.\n\n"+
				"%s\n\n"+
				"🔄 Нажмите кнопку ниже, чтобы зафиксировать активность:",
			assessment.HoursSinceActivity,
			assessment.LastActivity.Format("15:04"),
			assessment.IntervalHours, ageMonths, assessment.MinutesUntilFeeding, suggestions),
		Actions: actions,
	}
}

func BuildSleepWarning(now time.Time, session models.SleepSession, settings models.Settings) *Notification {
	duration := session.Duration(now)
	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60

	return &Notification{
		Category: CategorySleep,
		Severity: SeverityUrgent,
		Text: fmt.Sprintf(
			"⚠️ ВНИМАНИЕ! Малыш спит дольше интервала кормления!\n\n"+
				"😴 Малыш спит уже: %dч %dм\n"+
				"⏰ Начало сна: %s\n"+
				"🔄 Интервал кормления: %d ч.\n\n"+
				"🍼 Рекомендуется разбудить для кормления!\n\n"+
				"💡 Малыш может проснуться голодным, если сон выпадает на кормление",
			hours, minutes,
			session.StartTime.Format("15:04"),
			settings.FeedIntervalHours),
	}
}

func BuildTipNotification(tip string) *Notification {
	return &Notification{
		Category: CategoryTips,
		Severity: SeverityInfo,
		Text:     tip,
	}
}
