package http

import (
	"errors"
	"log/slog"

	"cv-generator/internal/domain"

	"github.com/gofiber/fiber/v2"
)

type errorPayload struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error returned by a handler to its HTTP status and the
// message shown to the caller.
func statusFor(err error) (int, string) {
	var (
		verr *domain.InputValidationError
		ferr *fiber.Error
	)
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, verr.Error()
	case errors.Is(err, domain.ErrNoProfile):
		return fiber.StatusNotFound, err.Error()
	case errors.As(err, &ferr):
		return ferr.Code, ferr.Message
	default:
		return fiber.StatusInternalServerError, err.Error()
	}
}

// ErrorHandler renders every error as {status:"error", message, request_id}.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, msg := statusFor(err)
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed", "request_id", rid, "path", c.Path(), "error", err)
		}
		return c.Status(status).JSON(errorPayload{Status: domain.StatusError, Message: msg, RequestID: rid})
	}
}
