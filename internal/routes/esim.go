package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/esim-portal/esim_portal/internal/esim"
)

// RegisterESIMRoutes mounts the lookup page at the site root and the JSON
// endpoint under the API group, both behind the lookup rate limiter.
func RegisterESIMRoutes(app *fiber.App, api fiber.Router, handler *esim.Handler, rateLimiter fiber.Handler) {
	app.Get("/", rateLimiter, handler.Page)
	api.Get("/esim/device-detail", rateLimiter, handler.Lookup)
}
