package services

import (
	"errors"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
)

func isAuthError(err error) bool {
	return errors.Is(err, apperrors.ErrUnauthenticated) ||
		errors.Is(err, apperrors.ErrNotAMember) ||
		errors.Is(err, apperrors.ErrForbidden)
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, apperrors.ErrConflict)
}

// logWorthy reports whether err is unexpected enough to log at error level.
func logWorthy(err error) bool {
	return !isAuthError(err) && !isNotFound(err) && !errors.Is(err, apperrors.ErrValidation)
}
