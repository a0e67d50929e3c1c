package serverutils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// AppError is an error that already knows its HTTP status and client message.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message}
}

// NewConflictError reports a uniqueness clash. Clients expect 400 here, not 409.
func NewConflictError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: "Internal server error", Err: err}
}

// Resolve maps any error to the status and message sent to the client.
func Resolve(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	return http.StatusInternalServerError, "Internal server error"
}
