package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified reqkit error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the status observed on the wire, 0 when none was.
	HTTPStatus int `json:"status,omitempty"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Constructors ---

// NetworkFailure creates an AppError for a failed standard-transport exchange.
// status is passed through untouched; 0 means no response was received.
func NetworkFailure(status int) *AppError {
	msg := "The request could not be completed."
	if status > 0 {
		msg = fmt.Sprintf("The request failed with status %d (%s).", status, http.StatusText(status))
	}
	return &AppError{
		Code: ErrCodeNetworkFailure, Message: msg, HTTPStatus: status,
		Details: map[string]any{"status": status},
	}
}

// HostFailure creates an AppError for a failed host-transport exchange.
// details must already be data-only.
func HostFailure(status int, details map[string]any) *AppError {
	return &AppError{
		Code: ErrCodeHostError, Message: "The host transport reported a failure.",
		HTTPStatus: status, Details: details,
	}
}

// ParseFailure creates an AppError for a malformed structured response.
func ParseFailure(cause error) *AppError {
	return &AppError{
		Code: ErrCodeParseError, Message: "The response is not well-formed JSON.",
		Cause: cause,
	}
}

// EncodeFailure creates an AppError for a request value that cannot be encoded.
func EncodeFailure(cause error) *AppError {
	return &AppError{
		Code: ErrCodeEncodeError, Message: "The request body could not be encoded.",
		Cause: cause,
	}
}

// TransportUnavailable creates an AppError for a missing host function.
func TransportUnavailable(name string) *AppError {
	return &AppError{
		Code: ErrCodeTransportUnavailable, Message: fmt.Sprintf("Cannot resolve function %s.", name),
		Details: map[string]any{"function": name},
	}
}

// NoFileSelected creates an AppError for a file helper invoked without a file.
func NoFileSelected() *AppError {
	return &AppError{
		Code: ErrCodeNoFileSelected, Message: "No file selected.",
	}
}

// Validation creates an AppError for invalid configuration or input.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
	}
}

// Internal creates an AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
