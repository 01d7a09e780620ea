package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewApp builds the fiber app with the API routes mounted under /api/v1
// and the probes at the root.
func NewApp(h *Handler, health *HealthHandler, log *slog.Logger, requestTimeout time.Duration) *fiber.App {
	if log == nil {
		log = slog.Default()
	}
	app := fiber.New(fiber.Config{
		AppName:               "apna-resume",
		ErrorHandler:          NewErrorHandler(log),
		ReadTimeout:           requestTimeout,
		WriteTimeout:          requestTimeout,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))

	app.Static("/img", "./static/img")

	if health != nil {
		health.RegisterRoutes(app)
	}
	h.RegisterRoutes(app.Group("/api/v1"))
	return app
}
