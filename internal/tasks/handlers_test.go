package tasks

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockJobs struct {
	mock.Mock
}

func (m *mockJobs) ExpandPending(ctx context.Context, organizationID string, today time.Time) (domain.ExpansionResult, error) {
	args := m.Called(ctx, organizationID, today)
	return args.Get(0).(domain.ExpansionResult), args.Error(1)
}

func (m *mockJobs) ExpandAll(ctx context.Context, today time.Time) (domain.ExpansionResult, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(domain.ExpansionResult), args.Error(1)
}

func (m *mockJobs) ProcessDueReminders(ctx context.Context, today time.Time) (domain.ReminderRunResult, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(domain.ReminderRunResult), args.Error(1)
}

func newTestHandler(jobs *mockJobs) *Handler {
	h := NewHandler(jobs, slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	h.now = func() time.Time { return time.Date(2024, 5, 10, 23, 30, 0, 0, time.UTC) }
	return h
}

func TestHandleExpandRecurring_AllOrganizations(t *testing.T) {
	jobs := new(mockJobs)
	jobs.On("ExpandAll", mock.Anything, domain.NewDate(2024, 5, 10)).Return(domain.ExpansionResult{Created: 3}, nil).Once()

	task, err := NewExpandRecurringTask(ExpandRecurringPayload{})
	require.NoError(t, err)

	require.NoError(t, newTestHandler(jobs).HandleExpandRecurring(context.Background(), task))
	jobs.AssertExpectations(t)
	jobs.AssertNotCalled(t, "ExpandPending", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleExpandRecurring_SingleOrganizationWithDate(t *testing.T) {
	jobs := new(mockJobs)
	jobs.On("ExpandPending", mock.Anything, "org-1", domain.NewDate(2024, 2, 29)).Return(domain.ExpansionResult{Created: 1}, nil).Once()

	task, err := NewExpandRecurringTask(ExpandRecurringPayload{OrganizationID: "org-1", Date: "2024-02-29"})
	require.NoError(t, err)

	require.NoError(t, newTestHandler(jobs).HandleExpandRecurring(context.Background(), task))
	jobs.AssertExpectations(t)
}

func TestHandleExpandRecurring_PropagatesFailure(t *testing.T) {
	jobs := new(mockJobs)
	jobs.On("ExpandAll", mock.Anything, mock.Anything).Return(domain.ExpansionResult{}, errors.New("store unavailable")).Once()

	task, err := NewExpandRecurringTask(ExpandRecurringPayload{})
	require.NoError(t, err)

	assert.Error(t, newTestHandler(jobs).HandleExpandRecurring(context.Background(), task))
}

func TestHandleProcessReminders(t *testing.T) {
	jobs := new(mockJobs)
	jobs.On("ProcessDueReminders", mock.Anything, domain.NewDate(2024, 5, 10)).
		Return(domain.ReminderRunResult{Sent: 2, Recorded: 1}, nil).Once()

	task, err := NewProcessRemindersTask(ProcessRemindersPayload{})
	require.NoError(t, err)

	require.NoError(t, newTestHandler(jobs).HandleProcessReminders(context.Background(), task))
	jobs.AssertExpectations(t)
}

func TestHandleProcessReminders_BadDateSkipsRetry(t *testing.T) {
	jobs := new(mockJobs)

	task, err := NewProcessRemindersTask(ProcessRemindersPayload{Date: "10/05/2024"})
	require.NoError(t, err)

	err = newTestHandler(jobs).HandleProcessReminders(context.Background(), task)
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	jobs.AssertNotCalled(t, "ProcessDueReminders", mock.Anything, mock.Anything)
}

func TestHandle_MalformedPayload(t *testing.T) {
	jobs := new(mockJobs)
	task := asynq.NewTask(TypeExpandRecurring, []byte("{not json"))

	assert.Error(t, newTestHandler(jobs).HandleExpandRecurring(context.Background(), task))
}

func TestRegisterPeriodicTasks_RejectsBadCron(t *testing.T) {
	err := RegisterPeriodicTasks(nil, "not a cron", "0 9 * * *")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RECURRING_CRON")

	err = RegisterPeriodicTasks(nil, "0 1 * * *", "61 * * * *")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REMINDER_CRON")
}
