// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenRevoked = errors.New("token revoked")
)

// ErrorKind is the closed set of failure classes the HTTP boundary knows how
// to render. Every AppError carries exactly one.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindInternal:
		return "internal"
	}
	return "internal"
}

func (k ErrorKind) StatusCode() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

type AppError struct {
	Err     error
	Kind    ErrorKind
	Message string
	Code    string
}

func NewAppError(err error, message string, kind ErrorKind, code string) *AppError {
	return &AppError{
		Err:     err,
		Kind:    kind,
		Message: message,
		Code:    code,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.Kind.StatusCode()
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, KindValidation, "VALIDATION_ERROR")
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Not authorized"
	}
	return NewAppError(ErrUnauthorized, message, KindUnauthorized, "UNAUTHORIZED")
}

func NotFoundError(message string) *AppError {
	if message == "" {
		message = "Not found"
	}
	return NewAppError(ErrNotFound, message, KindNotFound, "NOT_FOUND")
}

func InternalError(err error, message string) *AppError {
	if message == "" {
		message = "Internal server error"
	}
	return NewAppError(err, message, KindInternal, "INTERNAL_ERROR")
}

func TokenExpiredError() *AppError {
	return NewAppError(ErrTokenExpired, "Not authorized", KindUnauthorized, "TOKEN_EXPIRED")
}

func TokenInvalidError() *AppError {
	return NewAppError(ErrTokenInvalid, "Not authorized", KindUnauthorized, "TOKEN_INVALID")
}

func TokenRevokedError() *AppError {
	return NewAppError(ErrTokenRevoked, "Not authorized", KindUnauthorized, "TOKEN_REVOKED")
}

// Classify maps any error onto an AppError. Errors already carrying a kind
// pass through; bare sentinels get their canonical rendering; anything else
// is internal.
func Classify(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NewAppError(err, "Not found", KindNotFound, "NOT_FOUND")
	case errors.Is(err, ErrDuplicateKey):
		return NewAppError(err, "Resource already exists", KindConflict, "CONFLICT")
	case errors.Is(err, ErrInvalidInput):
		return NewAppError(err, "Invalid input", KindValidation, "VALIDATION_ERROR")
	case errors.Is(err, ErrTokenExpired):
		return NewAppError(err, "Not authorized", KindUnauthorized, "TOKEN_EXPIRED")
	case errors.Is(err, ErrTokenRevoked):
		return NewAppError(err, "Not authorized", KindUnauthorized, "TOKEN_REVOKED")
	case errors.Is(err, ErrTokenInvalid):
		return NewAppError(err, "Not authorized", KindUnauthorized, "TOKEN_INVALID")
	case errors.Is(err, ErrUnauthorized):
		return NewAppError(err, "Not authorized", KindUnauthorized, "UNAUTHORIZED")
	}

	return InternalError(err, "")
}
