package model

import (
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Error codes of the event domain
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "EVENT_NOT_FOUND"
	CodeStorage       = "EVENT_STORAGE_ERROR"
	CodeInvalidID     = "INVALID_EVENT_ID"
	CodeInternalError = "INTERNAL_SERVER_ERROR"
)

// EventError is the base error of the event domain
type EventError struct {
	Code    string      // unique error code (e.g. "EVENT_NOT_FOUND")
	Message string      // human readable message, safe to show clients
	Details interface{} // per-field messages for validation errors
	Err     error       // underlying error, never sent to clients
}

// Error implements error interface
func (e *EventError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap allows error wrapping compatibility
func (e *EventError) Unwrap() error {
	return e.Err
}

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

// NewValidationError wraps the field errors returned by a Validate method
func NewValidationError(err error) *EventError {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return &EventError{
			Code:    CodeValidation,
			Message: "Invalid event input",
			Details: fieldErrs,
			Err:     err,
		}
	}
	return &EventError{
		Code:    CodeValidation,
		Message: "Invalid event input",
		Details: map[string]string{"body": err.Error()},
		Err:     err,
	}
}

// NewEventNotFound creates the "event not found" error
func NewEventNotFound(id string) *EventError {
	return &EventError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("Event %s not found", id),
	}
}

// NewInvalidEventID is returned for an empty id
func NewInvalidEventID() *EventError {
	return &EventError{
		Code:    CodeInvalidID,
		Message: "Event id is required",
	}
}

// NewStorageError marks a failure of the backing store
func NewStorageError(op string, err error) *EventError {
	return &EventError{
		Code:    CodeStorage,
		Message: fmt.Sprintf("Failed to %s", op),
		Err:     err,
	}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func hasCode(err error, code string) bool {
	var evErr *EventError
	return errors.As(err, &evErr) && evErr.Code == code
}

func IsValidationError(err error) bool { return hasCode(err, CodeValidation) }

func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

func IsStorageError(err error) bool { return hasCode(err, CodeStorage) }

func IsInvalidID(err error) bool { return hasCode(err, CodeInvalidID) }

// HTTPError is what the handler sends back for a failed request
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details interface{}
}

// MapErrorToHTTP converts a domain error into status, code and a safe message.
// Storage and unknown errors never leak their cause.
func MapErrorToHTTP(err error) HTTPError {
	var evErr *EventError
	if !errors.As(err, &evErr) {
		return HTTPError{
			Status:  http.StatusInternalServerError,
			Code:    CodeInternalError,
			Message: "Internal server error",
		}
	}

	switch evErr.Code {
	case CodeValidation:
		return HTTPError{Status: http.StatusBadRequest, Code: evErr.Code, Message: evErr.Message, Details: evErr.Details}
	case CodeInvalidID:
		return HTTPError{Status: http.StatusBadRequest, Code: evErr.Code, Message: evErr.Message}
	case CodeNotFound:
		return HTTPError{Status: http.StatusNotFound, Code: evErr.Code, Message: evErr.Message}
	default:
		return HTTPError{
			Status:  http.StatusInternalServerError,
			Code:    CodeInternalError,
			Message: evErr.Message,
		}
	}
}
