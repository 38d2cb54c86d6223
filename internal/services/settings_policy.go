package services

import (
	"errors"
	"time"
)

var (
	ErrInvalidHour       = errors.New("hour must be between 0 and 23")
	ErrInvalidMinute     = errors.New("minute must be between 0 and 59")
	ErrInvalidInterval   = errors.New("interval must be between 1 and 24 hours")
	ErrInvalidBathPeriod = errors.New("bath period must be between 1 and 14 days")
	ErrBirthDateFormat   = errors.New("birth date must be YYYY-MM-DD")
	ErrBirthDateFuture   = errors.New("birth date must not be in the future")
)

func ValidateClockTime(hour int, minute int) error {
	if hour < 0 || hour > 23 {
		return ErrInvalidHour
	}
	if minute < 0 || minute > 59 {
		return ErrInvalidMinute
	}
	return nil
}

func ValidateIntervalHours(hours int) error {
	if hours < 1 || hours > 24 {
		return ErrInvalidInterval
	}
	return nil
}

func ValidateBathPeriodDays(days int) error {
	if days < 1 || days > 14 {
		return ErrInvalidBathPeriod
	}
	return nil
}

func ValidateBirthDate(value string, now time.Time) error {
	parsed, err := time.ParseInLocation(birthDateLayout, value, now.Location())
	if err != nil {
		return ErrBirthDateFormat
	}
	if parsed.After(now) {
		return ErrBirthDateFuture
	}
	return nil
}
