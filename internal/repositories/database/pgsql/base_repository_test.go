package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperrors.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uq_rent_reminders_property_month"}, apperrors.ErrConflict},
		{"foreign key violation", &pgconn.PgError{Code: pgForeignKeyViolation}, apperrors.ErrValidation},
		{"check violation", &pgconn.PgError{Code: pgCheckViolation, ConstraintName: "chk_budgets_window"}, apperrors.ErrValidation},
		{"missing table", &pgconn.PgError{Code: pgUndefinedTable}, apperrors.ErrSetupRequired},
		{"missing function", &pgconn.PgError{Code: pgUndefinedFunction}, apperrors.ErrSetupRequired},
		{"other pg error", &pgconn.PgError{Code: "57014"}, apperrors.ErrBackend},
		{"transport error", errors.New("connection reset by peer"), apperrors.ErrBackend},
		{"already mapped", apperrors.NewValidationFailedError("user id is required for writes"), apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapPgError(tt.err, "failed to save rent reminder")
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapPgError_KeepsCause(t *testing.T) {
	cause := &pgconn.PgError{Code: pgUniqueViolation}
	got := mapPgError(cause, "failed to save pending transaction")

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(got, &pgErr))
	assert.Equal(t, "conflict", apperrors.KindOf(got))
}

func TestMapPgError_Nil(t *testing.T) {
	assert.NoError(t, mapPgError(nil, "anything"))
}

func TestRequireAffected(t *testing.T) {
	assert.ErrorIs(t, requireAffected(pgconn.NewCommandTag("UPDATE 0"), "property"), apperrors.ErrNotFound)
	assert.NoError(t, requireAffected(pgconn.NewCommandTag("DELETE 1"), "property"))
}
