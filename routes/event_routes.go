package routes

import (
	"github.com/anjiri1684/certificate_validation/handlers"
	hub "github.com/anjiri1684/certificate_validation/websocket"
	"github.com/gofiber/fiber/v2"
)

func EventRoutes(app *fiber.App, h *hub.Hub) {
	ws := app.Group("/api/v1/ws", handlers.RequireUpgrade)
	ws.Get("/events", handlers.EventStream(h))
}
