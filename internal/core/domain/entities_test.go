package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Satisfies(t *testing.T) {
	tests := []struct {
		have, need domain.Role
		want       bool
	}{
		{domain.RoleOwner, domain.RoleAdmin, true},
		{domain.RoleAdmin, domain.RoleAdmin, true},
		{domain.RoleMember, domain.RoleAdmin, false},
		{domain.RoleMember, domain.RoleMember, true},
		{"guest", domain.RoleMember, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.have)+"->"+string(tt.need), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.have.Satisfies(tt.need))
		})
	}
}

func TestNewProperty(t *testing.T) {
	p, err := domain.NewProperty("p", testTenancy, domain.PropertyInput{
		Name:          "Elm St",
		Address:       "1 Elm St",
		PropertyType:  domain.PropertyHouse,
		PurchasePrice: decimal.RequireFromString("250000.005"),
		MonthlyRent:   decimal.NewFromInt(1500),
		PurchaseDate:  timePtr(time.Date(2020, 3, 4, 15, 0, 0, 0, time.UTC)),
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "org-a", p.OrganizationID)
	assert.Equal(t, "250000.01", p.PurchasePrice.StringFixed(2))
	assert.Equal(t, date(2020, 3, 4), *p.PurchaseDate)

	_, err = domain.NewProperty("p", testTenancy, domain.PropertyInput{Name: "x", PropertyType: "castle"}, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewIncomeAndExpense_Validation(t *testing.T) {
	_, err := domain.NewIncome("i", testTenancy, domain.IncomeInput{
		PropertyID: "p", Amount: decimal.NewFromInt(-1), IncomeType: domain.IncomeRent, TransactionDate: date(2024, 1, 1),
	}, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewExpense("e", domain.TenancyContext{UserID: "user-1"}, domain.ExpenseInput{
		PropertyID: "p", Amount: decimal.NewFromInt(1), ExpenseType: domain.ExpenseHOA, TransactionDate: date(2024, 1, 1),
	}, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrValidation, "organization id is required")

	_, err = domain.NewExpense("e", testTenancy, domain.ExpenseInput{
		PropertyID: "p", Amount: decimal.NewFromInt(1), ExpenseType: "fuel", TransactionDate: date(2024, 1, 1),
	}, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	i, err := domain.NewIncome("i", testTenancy, domain.IncomeInput{
		PropertyID: "p", Amount: decimal.NewFromInt(1500), IncomeType: domain.IncomeRent, TransactionDate: time.Date(2024, 4, 5, 9, 30, 0, 0, time.UTC),
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, date(2024, 4, 5), i.TransactionDate)
	assert.Equal(t, "user-1", i.CreatedBy)
}
