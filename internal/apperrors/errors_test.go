package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsKindAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewBackendError("failed to query properties", cause)

	assert.ErrorIs(t, err, ErrBackend)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "failed to query properties: connection reset", err.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unauthenticated sentinel", ErrUnauthenticated, "unauthenticated"},
		{"not a member wrapped", fmt.Errorf("resolve: %w", ErrNotAMember), "not_a_member"},
		{"not found constructor", NewNotFoundError("property not found"), "not_found"},
		{"validation constructor", NewValidationFailedError("amount must not be negative"), "validation"},
		{"conflict constructor", NewConflictError("reminder exists"), "conflict"},
		{"duplicate alias", ErrDuplicate, "conflict"},
		{"setup required", NewSetupRequiredError("missing table", nil), "setup_required"},
		{"code derived kind", NewAppError(http.StatusNotFound, "gone", nil), "not_found"},
		{"plain error", errors.New("boom"), "backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, StatusOf(ErrNotAMember))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(ErrUnauthenticated))
	assert.Equal(t, http.StatusBadRequest, StatusOf(NewValidationFailedError("bad")))
	assert.Equal(t, http.StatusConflict, StatusOf(ErrConflict))
	assert.Equal(t, http.StatusServiceUnavailable, StatusOf(ErrSetupRequired))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("x")))
}

func TestNotAMemberIsNotForbidden(t *testing.T) {
	err := NewNotAMemberError("user is not a member of organization B")
	assert.ErrorIs(t, err, ErrNotAMember)
	assert.NotErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "not_a_member", KindOf(err))
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
}
