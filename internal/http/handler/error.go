package handler

import (
	"github.com/gofiber/fiber/v2"

	"crmapi/internal/apperr"
)

// writeError writes the flat error envelope used by the whole API:
// {"error": "..."}.
func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// respondError maps a classified error to its HTTP status. Unclassified
// errors are upstream failures and surface as 500 with the raw message.
func respondError(c *fiber.Ctx, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return writeError(c, fiber.StatusBadRequest, apperr.MessageOf(err))
	case apperr.KindConflict:
		return writeError(c, fiber.StatusConflict, apperr.MessageOf(err))
	case apperr.KindNotFound:
		return writeError(c, fiber.StatusNotFound, apperr.MessageOf(err))
	case apperr.KindUnauthorized:
		return writeError(c, fiber.StatusUnauthorized, apperr.MessageOf(err))
	default:
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
}

// ErrorHandler is the Fiber global error handler; it catches errors that
// escape the handlers (routing, body limits) and keeps the envelope.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		msg := "internal server error"
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
			msg = e.Message
		}
		return writeError(c, status, msg)
	}
}
