// pkg/common/errors/errors.go

/*
  - Usage
    // Wrong:
    if err.(*hzte.Error).Meta != nil { // may panic
    // ...
    }

    // Right:
    if errors.Is(err, ErrNotFound) {
    // map to 404
    }
*/
package errors

import (
	"context"
	"errors"

	hzte "github.com/cloudwego/hertz/pkg/common/errors"
)

// Raw sentinels. Every error a service returns to a handler wraps exactly one of these.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("resource already exists")
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// FieldErrors maps a request field to what is wrong with it.
type FieldErrors map[string]string

// Wrapped as Hertz errors so handlers can surface Meta to the client.
func NewValidation(fields FieldErrors) *hzte.Error {
	return hzte.New(ErrValidation, hzte.ErrorTypePublic, fields)
}

func NewConflict(meta interface{}) *hzte.Error {
	return hzte.New(ErrConflict, hzte.ErrorTypePublic, meta)
}

func NewNotFound(meta interface{}) *hzte.Error {
	return hzte.New(ErrNotFound, hzte.ErrorTypePublic, meta)
}

func NewForbidden(meta interface{}) *hzte.Error {
	return hzte.New(ErrForbidden, hzte.ErrorTypePublic, meta)
}

func NewUnauthorized(meta interface{}) *hzte.Error {
	return hzte.New(ErrUnauthorized, hzte.ErrorTypePublic, meta)
}

// StatusCode returns the HTTP status for err; unknown errors are 500.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return 200
	case errors.Is(err, ErrValidation):
		return 422
	case errors.Is(err, ErrConflict):
		return 409
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrUnauthorized):
		return 401
	case errors.Is(err, context.DeadlineExceeded):
		return 503
	default:
		return 500
	}
}

// Fields extracts validation field errors carried in a Hertz error's Meta.
func Fields(err error) FieldErrors {
	var hzErr *hzte.Error
	if !errors.As(err, &hzErr) {
		return nil
	}
	fields, _ := hzErr.Meta.(FieldErrors)
	return fields
}

// IsPublic reports whether err's message is safe to return to a client.
func IsPublic(err error) bool {
	var hzErr *hzte.Error
	return errors.As(err, &hzErr) && hzErr.IsType(hzte.ErrorTypePublic)
}
