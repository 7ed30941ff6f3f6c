package model

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInvalidImage    = "INVALID_IMAGE"
	CodeImageTooLarge   = "IMAGE_TOO_LARGE"
	CodeUploadsDisabled = "UPLOADS_DISABLED"
	CodeStorage         = "IMAGE_STORAGE_ERROR"
)

// MediaError is the base error of the media domain
type MediaError struct {
	Code    string
	Message string
	Err     error
}

func (e *MediaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *MediaError) Unwrap() error {
	return e.Err
}

var ErrUploadsDisabled = &MediaError{
	Code:    CodeUploadsDisabled,
	Message: "Image uploads are not available",
}

func NewInvalidImage(err error) *MediaError {
	return &MediaError{Code: CodeInvalidImage, Message: "Only JPEG or PNG images are accepted", Err: err}
}

func NewImageTooLarge(maxBytes int64) *MediaError {
	return &MediaError{Code: CodeImageTooLarge, Message: fmt.Sprintf("Image must be at most %dMB", maxBytes/(1024*1024))}
}

func NewStorageError(op string, err error) *MediaError {
	return &MediaError{Code: CodeStorage, Message: fmt.Sprintf("Failed to %s", op), Err: err}
}

// MapErrorToHTTP returns status, code and a client safe message
func MapErrorToHTTP(err error) (int, string, string) {
	var mErr *MediaError
	if !errors.As(err, &mErr) {
		return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error"
	}
	switch mErr.Code {
	case CodeInvalidImage:
		return http.StatusBadRequest, mErr.Code, mErr.Message
	case CodeImageTooLarge:
		return http.StatusRequestEntityTooLarge, mErr.Code, mErr.Message
	case CodeUploadsDisabled:
		return http.StatusServiceUnavailable, mErr.Code, mErr.Message
	default:
		return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", mErr.Message
	}
}
