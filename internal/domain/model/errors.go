package model

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced by the auth and protected fetch flows. None of them
// is fatal; each leaves the prior session untouched.
var (
	ErrValidation         = errors.New("username and password are required")
	ErrTimeout            = errors.New("backend did not respond in time")
	ErrBackendUnreachable = errors.New("cannot reach backend")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEndpointNotFound   = errors.New("endpoint not found")
	ErrUnauthorized       = errors.New("unauthorized: invalid or expired token")
	ErrForbidden          = errors.New("forbidden: no permission to access this resource")
	ErrMalformedResponse  = errors.New("malformed response from backend")

	// ErrEmptyResult is soft: the call succeeded but returned no records.
	ErrEmptyResult = errors.New("no customers returned from protected endpoint")
)

// UnexpectedHTTPError is returned for a non-2xx status outside the known taxonomy.
type UnexpectedHTTPError struct {
	Status     int
	StatusText string
}

func (e *UnexpectedHTTPError) Error() string {
	return fmt.Sprintf("unexpected HTTP status: %d %s", e.Status, e.StatusText)
}

// Error kinds returned by ErrorKind.
const (
	KindNone                = ""
	KindValidation          = "validation"
	KindTimeout             = "timeout"
	KindUnreachable         = "unreachable"
	KindInvalidCredentials  = "invalid_credentials"
	KindEndpointNotFound    = "endpoint_not_found"
	KindUnauthorized        = "unauthorized"
	KindForbidden           = "forbidden"
	KindUnexpectedHTTPError = "unexpected_http_error"
	KindMalformedResponse   = "malformed_response"
	KindEmptyResult         = "empty_result"
	KindInternal            = "internal"
)

// ErrorKind classifies err into one of the Kind constants.
func ErrorKind(err error) string {
	var httpErr *UnexpectedHTTPError
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrBackendUnreachable):
		return KindUnreachable
	case errors.Is(err, ErrInvalidCredentials):
		return KindInvalidCredentials
	case errors.Is(err, ErrEndpointNotFound):
		return KindEndpointNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.As(err, &httpErr):
		return KindUnexpectedHTTPError
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformedResponse
	case errors.Is(err, ErrEmptyResult):
		return KindEmptyResult
	default:
		return KindInternal
	}
}

// IsSoft reports whether err should be presented neutrally rather than as a failure.
func IsSoft(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}
