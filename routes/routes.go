package routes

import (
	"github.com/anjiri1684/certificate_validation/handlers"
	hub "github.com/anjiri1684/certificate_validation/websocket"
	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	Certificates    *handlers.CertificateHandler
	Issuance        *handlers.IssuanceHandler
	Hub             *hub.Hub
	IssuanceEnabled bool
}

func Setup(app *fiber.App, deps Deps) {
	PublicRoutes(app)
	CertificateRoutes(app, deps.Certificates)
	IssuanceRoutes(app, deps.Issuance, deps.IssuanceEnabled)
	if deps.Hub != nil {
		EventRoutes(app, deps.Hub)
	}
}
