package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRentReminder(t *testing.T) {
	r, err := domain.NewRentReminder("r", "org-a", "prop-1", "user-1", domain.MonthKeyOf(date(2024, 5, 1)), time.Now())
	require.NoError(t, err)

	assert.Equal(t, date(2024, 5, 5), r.ReminderDate)
	assert.Equal(t, date(2024, 5, 10), r.NextReminderDate)
	assert.Equal(t, 0, r.ReminderCount)
	assert.Equal(t, domain.DefaultMaxReminders, r.MaxReminders)
	assert.Equal(t, 5, r.ReminderMonth)
	assert.Equal(t, 2024, r.ReminderYear)

	_, err = domain.NewRentReminder("r", "", "prop-1", "user-1", domain.MonthKeyOf(date(2024, 5, 1)), time.Now())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRentReminder_Escalation(t *testing.T) {
	r, err := domain.NewRentReminder("r", "org-a", "prop-1", "user-1", domain.MonthKeyOf(date(2024, 5, 1)), time.Now())
	require.NoError(t, err)

	assert.False(t, r.IsDue(date(2024, 5, 9)))
	require.True(t, r.IsDue(date(2024, 5, 10)))
	r.RecordSend(date(2024, 5, 10))
	assert.Equal(t, 1, r.ReminderCount)
	assert.Equal(t, date(2024, 5, 15), r.NextReminderDate)
	assert.Equal(t, date(2024, 5, 10), *r.LastSentDate)

	today := date(2024, 5, 15)
	for r.IsDue(today) {
		r.RecordSend(today)
		today = today.AddDate(0, 0, domain.ReminderCadenceDays)
	}
	assert.Equal(t, 6, r.ReminderCount)
	assert.False(t, r.IsDue(today.AddDate(0, 0, 30)), "ceiling reached")
}

func TestRentReminder_RecordedIsNeverDue(t *testing.T) {
	r, err := domain.NewRentReminder("r", "org-a", "prop-1", "user-1", domain.MonthKeyOf(date(2024, 5, 1)), time.Now())
	require.NoError(t, err)
	r.IsRentRecorded = true
	assert.False(t, r.IsDue(date(2024, 6, 1)))
}
