package routes

import (
	"github.com/anjiri1684/certificate_validation/handlers"
	"github.com/anjiri1684/certificate_validation/middleware"
	"github.com/gofiber/fiber/v2"
)

func IssuanceRoutes(app *fiber.App, h *handlers.IssuanceHandler, enabled bool) {
	gate := middleware.IssuanceEnabled(enabled)

	students := app.Group("/api/v1/students", gate)
	students.Post("", h.CreateStudent)
	students.Put("/:id", h.UpdateStudent)
	students.Delete("/:id", h.DeleteStudent)

	courses := app.Group("/api/v1/courses", gate)
	courses.Post("", h.CreateCourse)
	courses.Put("/:id", h.UpdateCourse)
	courses.Delete("/:id", h.DeleteCourse)

	certificates := app.Group("/api/v1/certificates")
	certificates.Post("", gate, h.IssueCertificate)
	certificates.Patch("/:code/status", gate, h.UpdateCertificateStatus)
}
