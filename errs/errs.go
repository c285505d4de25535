// Package errs defines the error taxonomy shared by all services and the
// mapping from each error kind to its HTTP status code.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validation(message string) error {
	return &ValidationError{Message: message}
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func Conflict(message string) error {
	return &ConflictError{Message: message}
}

type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

func InvalidState(message string) error {
	return &InvalidStateError{Message: message}
}

type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func Unauthorized(message string) error {
	return &UnauthorizedError{Message: message}
}

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func Forbidden(message string) error {
	return &ForbiddenError{Message: message}
}

// StatusCode resolves the HTTP status for a service error. Conflict and
// invalid-state failures are reported as 400 rather than 409 to keep the
// response contract uniform across the API.
func StatusCode(err error) int {
	var (
		notFound     *NotFoundError
		validation   *ValidationError
		conflict     *ConflictError
		invalidState *InvalidStateError
		unauthorized *UnauthorizedError
		forbidden    *ForbiddenError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusBadRequest
	case errors.As(err, &invalidState):
		return http.StatusBadRequest
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
