package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures for the HTTP layer.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindConfiguration
	KindTooManyRequests
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindConfiguration:
		return "configuration"
	case KindTooManyRequests:
		return "too_many_requests"
	}
	return "internal"
}

// DenialReason tells apart the gates that can produce a Forbidden error.
// Callers only ever see 403; the reason is kept for audit logging.
type DenialReason string

const (
	DenialMatrix    DenialReason = "matrix"
	DenialOwnership DenialReason = "ownership"
	DenialPolicy    DenialReason = "policy"
	DenialBanned    DenialReason = "banned"
)

type AppError struct {
	Kind    ErrorKind
	Reason  DenialReason
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func BadRequest(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func Forbidden(reason DenialReason, format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindForbidden, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Configuration(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

func TooManyRequests(message string) *AppError {
	return &AppError{Kind: KindTooManyRequests, Message: message}
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, KindInternal for anything that isn't an
// AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// ReasonOf returns the denial reason of a Forbidden error, or "".
func ReasonOf(err error) DenialReason {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Reason
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

func StatusCode(err error) int {
	switch KindOf(err) {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}
