// Package api exposes the liveness surface: the hosting platform's pinger
// and the scheduler's keep-alive job both call it.
package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/terraincognita07/kroha/internal/db"
)

func NewApp(store *db.Store, startedAt time.Time) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Kroha",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		database := "ok"
		status := "healthy"
		if err := store.Ping(c.Context()); err != nil {
			database = "error"
			status = "degraded"
		}
		return c.JSON(fiber.Map{
			"status":   status,
			"database": database,
			"uptime":   time.Since(startedAt).Round(time.Second).String(),
		})
	})

	return app
}
