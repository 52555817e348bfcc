package handlers

import (
	"errors"

	"github.com/anjiri1684/certificate_validation/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.CodeInvalidArgument:
		return fiber.StatusBadRequest
	case apperrors.CodeNotFound:
		return fiber.StatusNotFound
	case apperrors.CodeConstraintViolation:
		return fiber.StatusConflict
	case apperrors.CodeIntegrityMismatch:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func Error(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"status":  "error",
		"code":    code,
		"message": message,
	})
}

func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return Error(c, fiber.StatusBadRequest, "Invalid input")
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  "error",
		"code":    fiber.StatusBadRequest,
		"message": "Validation failed",
		"errors":  fields,
	})
}

// ErrorHandler renders fiber errors and apperrors with a uniform body.
// Internal failures are logged and their details withheld.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return Error(c, fe.Code, fe.Message)
		}

		var ae *apperrors.AppError
		if errors.As(err, &ae) {
			code := statusFor(ae.Code)
			if code < fiber.StatusInternalServerError {
				return Error(c, code, ae.Message)
			}
		}

		logger.Error("[ERROR] request failed",
			zap.Error(err),
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
		)
		return Error(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
