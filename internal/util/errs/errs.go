package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an expected failure carrying the HTTP status and a stable code
// clients can switch on.
type AppError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Extra   map[string]any `json:"extra,omitempty"`
	Cause   error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on code, so errors.Is(err, errs.New(..., "PROJECT_NOT_FOUND", ...)) works
// across separately constructed values.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

func (e *AppError) WithExtra(key string, value any) *AppError {
	copied := *e
	copied.Extra = make(map[string]any, len(e.Extra)+1)
	for k, v := range e.Extra {
		copied.Extra[k] = v
	}
	copied.Extra[key] = value
	return &copied
}

func (e *AppError) WithCause(cause error) *AppError {
	copied := *e
	copied.Cause = cause
	return &copied
}

func New(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func BadRequest(code, message string) *AppError {
	return New(http.StatusBadRequest, code, message)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(code, message string) *AppError {
	return New(http.StatusForbidden, code, message)
}

func NotFound(code, message string) *AppError {
	return New(http.StatusNotFound, code, message)
}

func Conflict(code, message string) *AppError {
	return New(http.StatusConflict, code, message)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, CodeRateLimitExceeded, message)
}

func Internal(code, message string, cause error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Code: code, Message: message, Cause: cause}
}

// Validation wraps field errors keyed by field path.
func Validation(fields map[string]string) *AppError {
	extra := make(map[string]any, len(fields))
	for k, v := range fields {
		extra[k] = v
	}

	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeValidationFailed,
		Message: "Validation failed",
		Extra:   extra,
	}
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
