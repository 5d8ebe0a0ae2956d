package fetch

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/kbukum/reqkit/errors"
)

// ErrorCode classifies a failed standard-transport exchange by its status.
// Classification is informational only; every failure is surfaced the same
// way and none is retried.
type ErrorCode int

const (
	// ErrCodeConnection indicates no response was received (status 0).
	ErrCodeConnection ErrorCode = iota
	// ErrCodeAuth indicates an authentication/authorization failure (401/403).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeClient indicates any other 4xx status.
	ErrCodeClient
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer
	// ErrCodeUnexpected indicates a non-2xx status outside 4xx and 5xx.
	ErrCodeUnexpected
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeConnection:
		return "connection"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeClient:
		return "client"
	case ErrCodeServer:
		return "server"
	default:
		return "unexpected"
	}
}

// StatusError is the rejection of a failed standard-transport exchange.
// Status is passed through as observed: 0 for a network failure, the
// response status otherwise.
type StatusError struct {
	Status int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Status == 0 {
		return "fetch: exchange failed without a response"
	}
	return fmt.Sprintf("fetch: exchange failed with status %d", e.Status)
}

// Code classifies the status.
func (e *StatusError) Code() ErrorCode {
	return ClassifyStatus(e.Status)
}

// ClassifyStatus maps a failure status onto an ErrorCode.
func ClassifyStatus(status int) ErrorCode {
	switch {
	case status == 0:
		return ErrCodeConnection
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrCodeAuth
	case status == http.StatusNotFound:
		return ErrCodeNotFound
	case status == http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case status >= 400 && status < 500:
		return ErrCodeClient
	case status >= 500:
		return ErrCodeServer
	default:
		return ErrCodeUnexpected
	}
}

// ParseError reports a response that should have been JSON but was not.
type ParseError struct {
	// Raw is the text that failed to parse.
	Raw string
	// Err is the decoder error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("fetch: malformed JSON response: %v", e.Err)
}

// Unwrap returns the decoder error.
func (e *ParseError) Unwrap() error { return e.Err }

// EncodeError reports a structured POST value that could not be encoded.
type EncodeError struct {
	Err error
}

// Error implements the error interface.
func (e *EncodeError) Error() string {
	return fmt.Sprintf("fetch: cannot encode request body: %v", e.Err)
}

// Unwrap returns the encoder error.
func (e *EncodeError) Unwrap() error { return e.Err }

// StatusOf returns the status carried by a StatusError in err's chain.
func StatusOf(err error) (int, bool) {
	var e *StatusError
	if errors.As(err, &e) {
		return e.Status, true
	}
	return 0, false
}

// IsConnection checks if an error is a failure without a response.
func IsConnection(err error) bool {
	return hasCode(err, ErrCodeConnection)
}

// IsAuth checks if an error is an authentication failure.
func IsAuth(err error) bool {
	return hasCode(err, ErrCodeAuth)
}

// IsNotFound checks if an error is a not-found failure.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsRateLimit checks if an error is a rate-limit failure.
func IsRateLimit(err error) bool {
	return hasCode(err, ErrCodeRateLimit)
}

// IsServerError checks if an error is a server failure.
func IsServerError(err error) bool {
	return hasCode(err, ErrCodeServer)
}

// IsParseError checks if an error is a ParseError.
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

func hasCode(err error, code ErrorCode) bool {
	var e *StatusError
	return errors.As(err, &e) && e.Code() == code
}

// ToAppError maps a fetch error onto the shared AppError shape. Errors that
// are already AppErrors are returned as is; anything unknown is internal.
func ToAppError(err error) *apperrors.AppError {
	if err == nil {
		return nil
	}
	var (
		statusErr *StatusError
		parseErr  *ParseError
		encodeErr *EncodeError
	)
	switch {
	case errors.As(err, &statusErr):
		return apperrors.NetworkFailure(statusErr.Status).
			WithDetail("class", statusErr.Code().String())
	case errors.As(err, &parseErr):
		return apperrors.ParseFailure(parseErr.Err)
	case errors.As(err, &encodeErr):
		return apperrors.EncodeFailure(encodeErr.Err)
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	return apperrors.Internal(err)
}
