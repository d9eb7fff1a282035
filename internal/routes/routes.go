package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/esim-portal/esim_portal/internal/config"
	"github.com/esim-portal/esim_portal/internal/esim"
	"github.com/esim-portal/esim_portal/internal/middleware"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Cache  *redis.Client
	Logger *slog.Logger

	// Doer overrides the vendor transport, primarily for tests.
	Doer esim.HTTPDoer
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	RegisterHealthRoutes(app, d)

	signer := esim.NewSigner(d.Cfg.KeyParams())
	client := esim.NewClient(d.Cfg.Credentials(), signer, d.Doer, d.Logger)
	handler := esim.NewHandler(client)

	rateLimiter := middleware.LookupRateLimit(d.Cache, d.Cfg.LookupPerMin)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterESIMRoutes(app, api, handler, rateLimiter)

	return nil
}
