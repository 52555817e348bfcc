package handlers

import (
	hub "github.com/anjiri1684/certificate_validation/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// RequireUpgrade rejects plain HTTP requests on websocket routes.
func RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func EventStream(h *hub.Hub) fiber.Handler {
	return websocket.New(h.Serve)
}
