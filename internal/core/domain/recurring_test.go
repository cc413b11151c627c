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

func TestDueDateFor(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		interval domain.RecurrenceInterval
		today    time.Time
		want     time.Time
	}{
		{"monthly current period", date(2024, 1, 5), domain.IntervalMonthly, date(2024, 4, 7), date(2024, 4, 5)},
		{"monthly day 31 in leap february", date(2024, 1, 31), domain.IntervalMonthly, date(2024, 2, 15), date(2024, 2, 29)},
		{"monthly day 31 in non-leap february", date(2024, 1, 31), domain.IntervalMonthly, date(2025, 2, 15), date(2025, 2, 28)},
		{"monthly day 31 in april", date(2024, 1, 31), domain.IntervalMonthly, date(2024, 4, 30), date(2024, 4, 30)},
		{"before start yields start", date(2024, 6, 1), domain.IntervalMonthly, date(2024, 5, 20), date(2024, 6, 1)},
		{"weekly floors to the last occurrence", date(2024, 1, 1), domain.IntervalWeekly, date(2024, 1, 17), date(2024, 1, 15)},
		{"weekly on the occurrence", date(2024, 1, 1), domain.IntervalWeekly, date(2024, 1, 15), date(2024, 1, 15)},
		{"quarterly stride three", date(2024, 1, 10), domain.IntervalQuarterly, date(2024, 5, 20), date(2024, 4, 10)},
		{"quarterly across year", date(2024, 11, 30), domain.IntervalQuarterly, date(2025, 3, 1), date(2025, 2, 28)},
		{"yearly replaces year", date(2020, 6, 15), domain.IntervalYearly, date(2024, 1, 2), date(2024, 6, 15)},
		{"yearly leap day clamps", date(2024, 2, 29), domain.IntervalYearly, date(2025, 3, 1), date(2025, 2, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DueDateFor(tt.start, tt.interval, tt.today))
		})
	}
}

func rentTemplate(t *testing.T, start time.Time, end *time.Time) domain.RecurringTransaction {
	t.Helper()
	rent := domain.IncomeRent
	tc := domain.TenancyContext{UserID: "user-1", OrganizationID: "org-a"}
	r, err := domain.NewRecurringTransaction("rec-1", tc, domain.RecurringInput{
		PropertyID:      "prop-1",
		TransactionType: domain.TransactionIncome,
		IncomeType:      &rent,
		Amount:          decimal.NewFromInt(1500),
		Description:     "Monthly rent",
		Interval:        domain.IntervalMonthly,
		StartDate:       start,
		EndDate:         end,
	}, time.Now())
	require.NoError(t, err)
	return r
}

func TestRecurringTransaction_DueOn(t *testing.T) {
	end := date(2024, 4, 7)
	r := rentTemplate(t, date(2024, 1, 5), &end)

	due, ok := r.DueOn(date(2024, 4, 7))
	assert.True(t, ok, "end date equal to today still yields a due")
	assert.Equal(t, date(2024, 4, 5), due)

	_, ok = r.DueOn(date(2024, 4, 8))
	assert.False(t, ok)

	early := date(2024, 4, 3)
	r2 := rentTemplate(t, date(2024, 1, 5), &early)
	due, ok = r2.DueOn(date(2024, 4, 3))
	assert.True(t, ok, "end date on today keeps the schedule running")
	assert.Equal(t, date(2024, 4, 5), due)
}

func TestRecurringTransaction_DueOn_ClampedPastEndDate(t *testing.T) {
	end := date(2024, 2, 15)
	r := rentTemplate(t, date(2024, 1, 31), &end)

	due, ok := r.DueOn(date(2024, 2, 15))
	require.True(t, ok)
	assert.Equal(t, date(2024, 2, 29), due)

	_, ok = r.DueOn(date(2024, 2, 16))
	assert.False(t, ok)
}

func TestRecurringTransaction_GeneratedIn(t *testing.T) {
	r := rentTemplate(t, date(2024, 1, 5), nil)
	assert.False(t, r.GeneratedIn(domain.MonthKeyOf(date(2024, 4, 5))))

	last := date(2024, 4, 5)
	r.LastGeneratedOn = &last
	assert.True(t, r.GeneratedIn(domain.MonthKeyOf(date(2024, 4, 30))))
	assert.False(t, r.GeneratedIn(domain.MonthKeyOf(date(2024, 5, 5))))
}

func TestNewRecurringTransaction_Validation(t *testing.T) {
	rent := domain.IncomeRent
	repairs := domain.ExpenseRepairs
	start := date(2024, 1, 1)
	before := date(2023, 12, 31)
	tc := domain.TenancyContext{UserID: "user-1", OrganizationID: "org-a"}

	tests := []struct {
		name string
		in   domain.RecurringInput
	}{
		{"income without income type", domain.RecurringInput{PropertyID: "p", TransactionType: domain.TransactionIncome, ExpenseType: &repairs, Interval: domain.IntervalMonthly, StartDate: start}},
		{"expense with both types", domain.RecurringInput{PropertyID: "p", TransactionType: domain.TransactionExpense, IncomeType: &rent, ExpenseType: &repairs, Interval: domain.IntervalMonthly, StartDate: start}},
		{"negative amount", domain.RecurringInput{PropertyID: "p", TransactionType: domain.TransactionIncome, IncomeType: &rent, Amount: decimal.NewFromInt(-1), Interval: domain.IntervalMonthly, StartDate: start}},
		{"end before start", domain.RecurringInput{PropertyID: "p", TransactionType: domain.TransactionIncome, IncomeType: &rent, Interval: domain.IntervalMonthly, StartDate: start, EndDate: &before}},
		{"unknown interval", domain.RecurringInput{PropertyID: "p", TransactionType: domain.TransactionIncome, IncomeType: &rent, Interval: "daily", StartDate: start}},
		{"missing property", domain.RecurringInput{TransactionType: domain.TransactionIncome, IncomeType: &rent, Interval: domain.IntervalMonthly, StartDate: start}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewRecurringTransaction("r", tc, tt.in, time.Now())
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestNewPendingFromRecurring(t *testing.T) {
	r := rentTemplate(t, date(2024, 1, 5), nil)
	p := domain.NewPendingFromRecurring("pend-1", r, time.Date(2024, 4, 5, 13, 0, 0, 0, time.UTC), time.Now())

	assert.Equal(t, "org-a", p.OrganizationID)
	assert.Equal(t, "rec-1", p.RecurringTransactionID)
	assert.Equal(t, date(2024, 4, 5), p.TransactionDate)
	assert.Equal(t, "2024-04", p.MonthKey)
	assert.False(t, p.IsConfirmed)
	assert.True(t, p.IsRent())
}

func TestPendingTransaction_ApplyPatch(t *testing.T) {
	r := rentTemplate(t, date(2024, 1, 5), nil)
	p := domain.NewPendingFromRecurring("pend-1", r, date(2024, 4, 5), time.Now())

	amount := decimal.NewFromFloat(1450.456)
	desc := "April rent, discounted"
	require.NoError(t, p.ApplyPatch(domain.PendingPatch{Amount: &amount, Description: &desc}, "user-2", time.Now()))
	assert.Equal(t, "1450.46", p.Amount.StringFixed(2))
	assert.Equal(t, desc, p.Description)
	assert.Equal(t, "user-2", p.LastUpdatedBy)

	repairs := domain.ExpenseRepairs
	err := p.ApplyPatch(domain.PendingPatch{ExpenseType: &repairs}, "user-2", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, domain.IncomeRent, *p.IncomeType, "failed patch leaves the row unchanged")

	negative := decimal.NewFromInt(-5)
	err = p.ApplyPatch(domain.PendingPatch{Amount: &negative}, "user-2", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "1450.46", p.Amount.StringFixed(2))
}
