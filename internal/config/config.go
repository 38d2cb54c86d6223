package config

import (
	"os"
	"time"
)

type Config struct {
	BotToken    string
	DBPath      string
	Port        string
	Timezone    string
	ExternalURL string
	AdvicePath  string

	FeedingTick   time.Duration
	DiaperTick    time.Duration
	BathTick      time.Duration
	ActivityTick  time.Duration
	SleepTick     time.Duration
	TipsTick      time.Duration
	KeepAliveTick time.Duration
	TickTimeout   time.Duration
}

func Load() Config {
	return Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		DBPath:      getenv("DB_PATH", "data/kroha.db"),
		Port:        getenv("PORT", "8000"),
		Timezone:    getenv("TZ", "Asia/Bangkok"),
		ExternalURL: os.Getenv("EXTERNAL_URL"),
		AdvicePath:  getenv("ADVICE_PATH", "data/advice.csv"),

		FeedingTick:   getenvDuration("FEEDING_TICK", 15*time.Minute),
		DiaperTick:    getenvDuration("DIAPER_TICK", 15*time.Minute),
		BathTick:      getenvDuration("BATH_TICK", 30*time.Minute),
		ActivityTick:  getenvDuration("ACTIVITY_TICK", 15*time.Minute),
		SleepTick:     getenvDuration("SLEEP_TICK", 15*time.Minute),
		TipsTick:      getenvDuration("TIPS_TICK", time.Minute),
		KeepAliveTick: getenvDuration("KEEPALIVE_TICK", 3*time.Minute),
		TickTimeout:   getenvDuration("TICK_TIMEOUT", 30*time.Second),
	}
}

func getenv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
