package pkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

const internalErrorMessage = "Internal server error"

// FieldError describes a single rejected field of a request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned for malformed path params or bodies and
// is surfaced as HTTP 400.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func NewValidationError(message string, fields ...FieldError) *ValidationError {
	return &ValidationError{
		Message: message,
		Fields:  fields,
	}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

// NotFoundError is surfaced as HTTP 404.
type NotFoundError struct {
	Message string
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func (e *NotFoundError) Error() string {
	return e.Message
}

type errorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// WriteError maps err onto the API error taxonomy. Anything that is not a
// validation or not-found error becomes a 500 with no detail.
func WriteError(w http.ResponseWriter, err error) {
	var (
		statusCode = http.StatusInternalServerError
		resp       = errorResponse{Message: internalErrorMessage}
	)

	var validationErr *ValidationError
	var notFoundErr *NotFoundError
	switch {
	case errors.As(err, &validationErr):
		statusCode = http.StatusBadRequest
		resp = errorResponse{
			Message: validationErr.Message,
			Errors:  validationErr.Fields,
		}
	case errors.As(err, &notFoundErr):
		statusCode = http.StatusNotFound
		resp = errorResponse{Message: notFoundErr.Message}
	default:
		log.Errorf("internal error: %s", err)
	}

	respBytes, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		log.Errorf("marshal error response: %s", marshalErr)
		respBytes = []byte(`{"message":"` + internalErrorMessage + `"}`)
		statusCode = http.StatusInternalServerError
	}
	WriteResponseBytes(w, ContentType.JSON, respBytes, statusCode)
}
