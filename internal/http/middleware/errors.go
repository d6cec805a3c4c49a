package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorLocalKey holds an internal error for the request logger. It is never sent to clients.
const ErrorLocalKey = "error"

// ErrorPayload is the body of every error response.
type ErrorPayload struct {
	RequestID string    `json:"request_id"`
	Error     ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError sends the error envelope. message must be safe to show to clients.
func WriteError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(ErrorPayload{
		RequestID: GetRequestID(c),
		Error:     ErrorBody{Code: code, Message: message},
	})
}

// statusOf returns the status a request ends with once err reaches the error handler.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
