package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/terraincognita07/kroha/internal/api"
	"github.com/terraincognita07/kroha/internal/config"
	"github.com/terraincognita07/kroha/internal/db"
	"github.com/terraincognita07/kroha/internal/notify"
	"github.com/terraincognita07/kroha/internal/scheduler"
	"github.com/terraincognita07/kroha/internal/services"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is required")
	}

	location := mustLoadLocation(cfg.Timezone)
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	store := db.NewStore(database)
	notifier := notify.NewTelegram(cfg.BotToken)
	tips := services.NewTipService(cfg.AdvicePath)

	reminders := scheduler.New(store, notifier, tips, location, scheduler.Config{
		FeedingTick:   cfg.FeedingTick,
		DiaperTick:    cfg.DiaperTick,
		BathTick:      cfg.BathTick,
		ActivityTick:  cfg.ActivityTick,
		SleepTick:     cfg.SleepTick,
		TipsTick:      cfg.TipsTick,
		KeepAliveTick: cfg.KeepAliveTick,
		TickTimeout:   cfg.TickTimeout,
		ExternalURL:   cfg.ExternalURL,
	})

	app := api.NewApp(store, time.Now())

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	if err := reminders.Start(lifecycleCtx); err != nil {
		log.Fatalf("scheduler init failed: %v", err)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Kroha listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
