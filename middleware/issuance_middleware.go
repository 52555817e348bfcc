package middleware

import "github.com/gofiber/fiber/v2"

// IssuanceEnabled guards the write routes behind the ENABLE_ISSUANCE switch.
func IssuanceEnabled(enabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !enabled {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "error",
				"code":    fiber.StatusForbidden,
				"message": "Certificate issuance is disabled",
			})
		}
		return c.Next()
	}
}
