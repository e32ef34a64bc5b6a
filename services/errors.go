package services

import (
	"errors"
	"fmt"

	"github.com/ADat1304/Project-cafe/gateway"
)

type ValidationCode string

const (
	MissingTable         ValidationCode = "MissingTable"
	MissingPaymentMethod ValidationCode = "MissingPaymentMethod"
	EmptyCart            ValidationCode = "EmptyCart"
	InvalidField         ValidationCode = "InvalidField"
)

// ValidationError is a user-correctable problem found before any network call.
type ValidationError struct {
	Code    ValidationCode
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(code ValidationCode, field, msg string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: msg}
}

// CatalogFetchError wraps a failed catalog refresh; the previous snapshot is kept.
type CatalogFetchError struct {
	Resource string
	Err      error
}

func (e *CatalogFetchError) Error() string {
	return fmt.Sprintf("refresh %s: %v", e.Resource, e.Err)
}

func (e *CatalogFetchError) Unwrap() error { return e.Err }

var (
	ErrSubmissionInFlight = errors.New("order submission already in progress")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const (
	msgCannotReachServer = "cannot reach server"
	msgRequestFailed     = "request failed"
)

// UserMessage turns an error into the text shown next to the failed action.
// Gateway messages are passed through verbatim.
func UserMessage(err error) string {
	var ve *ValidationError
	var ge *gateway.Error
	var ne *gateway.NetworkError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &ge):
		if ge.Message != "" {
			return ge.Message
		}
		return msgRequestFailed
	case errors.As(err, &ne):
		return msgCannotReachServer
	default:
		return err.Error()
	}
}
