package routes

import (
	"github.com/anjiri1684/certificate_validation/handlers"
	"github.com/gofiber/fiber/v2"
)

func CertificateRoutes(app *fiber.App, h *handlers.CertificateHandler) {
	api := app.Group("/api/v1")
	api.Get("/certificates", h.ListCertificates)
	api.Get("/certificates/:code", h.GetCertificate)
	api.Get("/certificates/:code/document", h.GetDocument)
	api.Get("/validate", h.ValidateCertificate)

	// Unversioned paths kept for existing clients.
	app.Get("/certificates", h.ListCertificates)
	app.Get("/certificate/:code", h.GetCertificate)
	app.Get("/validate", h.ValidateCertificate)
}
