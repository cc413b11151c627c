package apperrors

import (
	"errors"
	"net/http"
)

// ErrUnauthenticated indicates that the request carries no user session.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrNotAMember indicates that the user holds no membership in the requested organization.
var ErrNotAMember = errors.New("not a member of organization")

// ErrForbidden indicates that the user is a member but lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates a uniqueness violation.
var ErrConflict = errors.New("resource already exists")

// ErrDuplicate is kept as an alias of ErrConflict.
var ErrDuplicate = ErrConflict

// ErrBackend indicates a transport or remote-store failure.
var ErrBackend = errors.New("backend error")

// ErrSetupRequired indicates that a relation the application depends on is missing from the store.
var ErrSetupRequired = errors.New("database setup required")

// AppError carries an HTTP-ish status code, a human-readable message, the
// error kind (one of the sentinels above) and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
	kind    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewAppError builds an AppError whose kind is derived from the status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err, kind: kindForCode(code)}
}

// NewNotFoundError creates a NotFound error for the named resource.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, kind: ErrNotFound}
}

// NewValidationFailedError creates a Validation error.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, kind: ErrValidation}
}

// NewConflictError creates a Conflict error.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, kind: ErrConflict}
}

// NewNotAMemberError reports a user acting in an organization they do not belong to.
func NewNotAMemberError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, kind: ErrNotAMember}
}

// NewForbiddenError reports a member lacking the required role.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, kind: ErrForbidden}
}

// NewBackendError wraps a transport or store failure.
func NewBackendError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: err, kind: ErrBackend}
}

// NewSetupRequiredError reports a missing relation.
func NewSetupRequiredError(message string, err error) *AppError {
	return &AppError{Code: http.StatusServiceUnavailable, Message: message, Err: err, kind: ErrSetupRequired}
}

func kindForCode(code int) error {
	switch code {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusConflict:
		return ErrConflict
	case http.StatusServiceUnavailable:
		return ErrSetupRequired
	default:
		return ErrBackend
	}
}

// KindOf returns the user-visible kind of err. Errors that carry no known
// kind are reported as "backend".
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrNotAMember):
		return "not_a_member"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrSetupRequired):
		return "setup_required"
	default:
		return "backend"
	}
}

// StatusOf maps err onto an HTTP status code.
func StatusOf(err error) int {
	switch KindOf(err) {
	case "unauthenticated":
		return http.StatusUnauthorized
	case "not_a_member", "forbidden":
		return http.StatusForbidden
	case "not_found":
		return http.StatusNotFound
	case "validation":
		return http.StatusBadRequest
	case "conflict":
		return http.StatusConflict
	case "setup_required":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
