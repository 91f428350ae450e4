package apierror

import "github.com/gofiber/fiber/v2"

// FieldError describes a single validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a domain error that carries an explicit HTTP status code, a
// caller-facing message and optional structured details. It satisfies the
// error interface so it can flow through ordinary error returns.
type Error struct {
	Status  int
	Message string
	Details []FieldError
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// New constructs an Error with the given status and message.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Unauthenticated indicates the request carried no valid principal.
func Unauthenticated() *Error {
	return New(fiber.StatusUnauthorized, "authentication required")
}

// Forbidden indicates a valid principal with insufficient privilege.
func Forbidden(message string) *Error {
	if message == "" {
		message = "insufficient permissions"
	}
	return New(fiber.StatusForbidden, message)
}

// NotFound indicates the requested resource does not exist.
func NotFound(message string) *Error {
	if message == "" {
		message = "record not found"
	}
	return New(fiber.StatusNotFound, message)
}

// Conflict indicates a duplicate unique key, e.g. a double enrollment.
func Conflict(message string) *Error {
	if message == "" {
		message = "a record with this value already exists"
	}
	return New(fiber.StatusConflict, message)
}

// Validation indicates an input shape or constraint violation.
func Validation(details []FieldError) *Error {
	return &Error{
		Status:  fiber.StatusBadRequest,
		Message: "validation error",
		Details: details,
	}
}

// TooManyRequests indicates the caller exceeded a rate limit.
func TooManyRequests() *Error {
	return New(fiber.StatusTooManyRequests, "too many requests")
}
