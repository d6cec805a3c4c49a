package service

import (
	"database/sql"
	"errors"
	"fmt"

	"stallhub/internal/repository"
)

// Sentinel errors returned by every service. Handlers map them to status codes;
// wrapped messages after the sentinel are safe to show to clients.
var (
	ErrIDRequired         = errors.New("id is required")
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrNotAcceptingOrders = errors.New("business is not accepting orders")
	ErrTokenInvalid       = errors.New("link or code is invalid or expired")
	ErrReaderNil          = errors.New("reader is nil")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// notFound translates a missing row into ErrNotFound and passes other errors through.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// duplicate translates a unique violation into a conflict with msg.
func duplicate(err error, msg string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return conflict("%s", msg)
	}
	return err
}
