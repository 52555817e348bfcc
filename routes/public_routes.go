package routes

import (
	"github.com/anjiri1684/certificate_validation/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	app.Get("/", handlers.Welcome)

	api := app.Group("/api/v1")
	api.Get("/", handlers.Welcome)
	api.Get("/health", handlers.Health)
}
