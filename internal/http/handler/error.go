package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"stallhub/internal/http/middleware"
	"stallhub/internal/service"
)

// errorPayload is the body of every error response.
type errorPayload = middleware.ErrorPayload

func writeError(c *fiber.Ctx, status int, code, message string) error {
	return middleware.WriteError(c, status, code, message)
}

type errorMapping struct {
	target error
	status int
	code   string
}

// errorMappings is checked in order; the first sentinel matched by errors.Is wins.
var errorMappings = []errorMapping{
	{service.ErrIDRequired, fiber.StatusBadRequest, "INVALID_ID"},
	{service.ErrReaderNil, fiber.StatusBadRequest, "FILE_REQUIRED"},
	{service.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT"},
	{service.ErrCartEmpty, fiber.StatusBadRequest, "CART_EMPTY"},
	{service.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{service.ErrTokenInvalid, fiber.StatusUnauthorized, "TOKEN_INVALID"},
	{service.ErrAccountDisabled, fiber.StatusForbidden, "ACCOUNT_DISABLED"},
	{service.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{service.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{service.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{service.ErrProductUnavailable, fiber.StatusConflict, "PRODUCT_UNAVAILABLE"},
	{service.ErrNotAcceptingOrders, fiber.StatusConflict, "NOT_ACCEPTING_ORDERS"},
	{service.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// respondError maps a service error to the error envelope. Sentinel messages and
// the detail wrapped after them are client safe; anything else becomes a generic
// 500 and the cause is handed to the request logger.
func respondError(c *fiber.Ctx, err error) error {
	var pe *paramError
	if errors.As(err, &pe) {
		return writeError(c, fiber.StatusBadRequest, pe.code, pe.message)
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return writeError(c, m.status, m.code, clientMessage(err, m.target))
		}
	}
	c.Locals(middleware.ErrorLocalKey, err)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// clientMessage strips any context prepended before the sentinel.
func clientMessage(err, target error) string {
	msg := err.Error()
	if i := strings.Index(msg, target.Error()); i > 0 {
		return msg[i:]
	}
	return msg
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			c.Locals(middleware.ErrorLocalKey, err)
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "authentication required")
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", "forbidden")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		case fiber.StatusTooManyRequests:
			return writeError(c, status, "RATE_LIMITED", "too many requests")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
