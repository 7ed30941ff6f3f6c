package wallet

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	CodeInvalidRequest   = "VALIDATION_ERROR"
	CodeMessageMismatch  = "MESSAGE_MISMATCH"
	CodeMessageExpired   = "SIGN_IN_EXPIRED"
	CodeInvalidSignature = "INVALID_SIGNATURE"
	CodeTokenIssue       = "INTERNAL_SERVER_ERROR"
)

type WalletError struct {
	Code    string
	Message string
	Details interface{}
	Err     error
}

func (e *WalletError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *WalletError) Unwrap() error { return e.Err }

var (
	ErrMessageMismatch = &WalletError{Code: CodeMessageMismatch, Message: "Signed message does not match the sign in message"}
	ErrMessageExpired  = &WalletError{Code: CodeMessageExpired, Message: "Sign in message has expired, sign again"}
	ErrBadSignature    = &WalletError{Code: CodeInvalidSignature, Message: "Signature verification failed"}
)

func newInvalidRequest(err error) *WalletError {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return &WalletError{Code: CodeInvalidRequest, Message: "Invalid sign in request", Details: fieldErrs, Err: err}
	}
	return &WalletError{Code: CodeInvalidRequest, Message: "Invalid sign in request", Err: err}
}

func newTokenError(err error) *WalletError {
	return &WalletError{Code: CodeTokenIssue, Message: "Could not issue session token", Err: err}
}

// StatusFor maps a wallet error to its HTTP status
func StatusFor(err error) (int, *WalletError) {
	var wErr *WalletError
	if !errors.As(err, &wErr) {
		return http.StatusInternalServerError, &WalletError{Code: "INTERNAL_SERVER_ERROR", Message: "Internal server error"}
	}
	switch wErr.Code {
	case CodeInvalidRequest, CodeMessageMismatch:
		return http.StatusBadRequest, wErr
	case CodeInvalidSignature, CodeMessageExpired:
		return http.StatusUnauthorized, wErr
	default:
		return http.StatusInternalServerError, wErr
	}
}
