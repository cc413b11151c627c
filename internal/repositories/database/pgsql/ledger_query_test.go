package pgsql

import (
	"testing"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/SscSPs/property_ledger_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerWhere(t *testing.T) {
	from := domain.NewDate(2024, 1, 1)
	to := domain.NewDate(2024, 12, 31)
	propertyID := "prop-1"

	w := ledgerWhere("i", domain.LedgerFilter{
		OrganizationID: "org-1",
		PropertyID:     &propertyID,
		Window:         domain.DateWindow{From: &from, To: &to},
	})

	assert.Equal(t, "WHERE i.organization_id = $1 AND i.property_id = $2 AND i.transaction_date >= $3 AND i.transaction_date <= $4 ", w.String())
	assert.Equal(t, []any{"org-1", "prop-1", from, to}, w.args)
}

func TestLedgerWhere_OrganizationOnly(t *testing.T) {
	w := ledgerWhere("e", domain.LedgerFilter{OrganizationID: "org-1"})

	assert.Equal(t, "WHERE e.organization_id = $1 ", w.String())
	assert.Len(t, w.args, 1)
}

func TestPageWhere_WithCursor(t *testing.T) {
	cursor := pagination.Cursor{
		TransactionDate: domain.NewDate(2024, 3, 1),
		CreatedAt:       time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		ID:              "inc-9",
	}
	token := pagination.EncodeToken(cursor)

	w, err := pageWhere("i", "income_id", "org-1", nil, &token)
	require.NoError(t, err)
	assert.Equal(t, "WHERE i.organization_id = $1 AND (i.transaction_date, i.created_at, i.income_id) < ($2, $3, $4) ", w.String())
	assert.Len(t, w.args, 4)
	assert.Equal(t, "inc-9", w.args[3])
}

func TestPageWhere_InvalidToken(t *testing.T) {
	bad := "%%%"
	_, err := pageWhere("i", "income_id", "org-1", nil, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNextPageToken(t *testing.T) {
	rows := []domain.Income{
		{IncomeID: "c", TransactionDate: domain.NewDate(2024, 3, 3)},
		{IncomeID: "b", TransactionDate: domain.NewDate(2024, 3, 2)},
		{IncomeID: "a", TransactionDate: domain.NewDate(2024, 3, 1)},
	}
	cursorOf := func(i domain.Income) pagination.Cursor {
		return pagination.Cursor{TransactionDate: i.TransactionDate, CreatedAt: i.CreatedAt, ID: i.IncomeID}
	}

	page, token := nextPageToken(rows, 2, cursorOf)
	require.Len(t, page, 2)
	require.NotNil(t, token)
	cursor, err := pagination.DecodeToken(*token)
	require.NoError(t, err)
	assert.Equal(t, "b", cursor.ID)

	page, token = nextPageToken(rows, 3, cursorOf)
	assert.Len(t, page, 3)
	assert.Nil(t, token)
}
