package apierror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Response is the uniform error body returned to API clients.
type Response struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// Normalize maps any failure to a status code and a uniform body. Branches
// are evaluated in precedence order and the first match wins:
// domain *Error passthrough, validation errors (400, uniformly), storage
// duplicate key (409), storage row missing (404), any other error message
// (500), opaque failure (500 generic). The original error is always logged
// before the normalized response is produced.
func Normalize(logger zerolog.Logger, err error) (int, Response) {
	logger.Error().Err(err).Msg("request failed")

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status, Response{Error: apiErr.Message, Details: apiErr.Details}
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]FieldError, 0, len(validationErrors))
		for _, violation := range validationErrors {
			details = append(details, FieldError{
				Field:   fieldPath(violation),
				Message: violationMessage(violation),
			})
		}
		return fiber.StatusBadRequest, Response{Error: "validation error", Details: details}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fiber.StatusConflict, Response{Error: "a record with this value already exists"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound, Response{Error: "record not found"}
	}

	if err != nil && err.Error() != "" {
		return fiber.StatusInternalServerError, Response{Error: err.Error()}
	}

	return fiber.StatusInternalServerError, Response{Error: "an unexpected error occurred"}
}

func fieldPath(violation validator.FieldError) string {
	namespace := violation.Namespace()
	if idx := strings.Index(namespace, "."); idx >= 0 {
		namespace = namespace[idx+1:]
	}
	return strings.ToLower(namespace)
}

func violationMessage(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "must be at least " + violation.Param()
	case "max":
		return "must be at most " + violation.Param()
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a valid RFC 3339 timestamp"
	default:
		return "failed validation on '" + violation.Tag() + "'"
	}
}
