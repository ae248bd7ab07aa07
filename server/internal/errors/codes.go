// Package errors maps service errors to the API error envelope and HTTP statuses.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hrygo/nursery/server/service/babycare"
)

// ErrorCode represents a specific error type returned by the API.
type ErrorCode string

const (
	// ErrCodeNotFound indicates an unknown child, timer or record.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidArgument indicates invalid input parameters or a rejected payload.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeServiceUnavailable indicates Baby Buddy could not be reached.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeConfirmationRequired indicates a destructive tool ran without confirmed=true.
	ErrCodeConfirmationRequired ErrorCode = "CONFIRMATION_REQUIRED"
	// ErrCodeRateLimitExceeded indicates rate limit has been exceeded.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeToolNotFound indicates the requested tool does not exist.
	ErrCodeToolNotFound ErrorCode = "TOOL_NOT_FOUND"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// APIError represents a structured error returned by the API.
type APIError struct {
	Code    ErrorCode           `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
	Cause   error               `json:"-"`
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Status returns the HTTP status for the error code.
func (e *APIError) Status() int {
	switch e.Code {
	case ErrCodeNotFound, ErrCodeToolNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidArgument:
		return http.StatusUnprocessableEntity
	case ErrCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeConfirmationRequired:
		return http.StatusConflict
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Envelope is the JSON body of every error response.
type Envelope struct {
	Error *APIError `json:"error"`
}

// ToolNotFound creates a tool not found error.
func ToolNotFound(name string) *APIError {
	return &APIError{Code: ErrCodeToolNotFound, Message: fmt.Sprintf("tool not found: %s", name)}
}

// RateLimitExceeded creates a rate limit exceeded error.
func RateLimitExceeded(msg string) *APIError {
	return &APIError{Code: ErrCodeRateLimitExceeded, Message: msg}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *APIError {
	return &APIError{Code: ErrCodeInvalidArgument, Message: msg}
}

var kindCodes = map[babycare.Kind]ErrorCode{
	babycare.KindNotFound:             ErrCodeNotFound,
	babycare.KindValidation:           ErrCodeInvalidArgument,
	babycare.KindUnavailable:          ErrCodeServiceUnavailable,
	babycare.KindConfirmationRequired: ErrCodeConfirmationRequired,
	babycare.KindPartialFinalization:  ErrCodeInternal,
	babycare.KindInternal:             ErrCodeInternal,
}

// FromError converts any error into an APIError. Service errors keep their message
// and field map; anything else becomes an internal error.
func FromError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var e *babycare.Error
	if errors.As(err, &e) {
		code, ok := kindCodes[e.Kind]
		if !ok {
			code = ErrCodeInternal
		}
		return &APIError{Code: code, Message: e.Error(), Fields: e.Fields, Cause: err}
	}
	return &APIError{Code: ErrCodeInternal, Message: "internal error", Cause: err}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}
