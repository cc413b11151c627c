package services_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RentReminderServiceTestSuite struct {
	serviceSuite
	may domain.MonthKey
}

func TestRentReminderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RentReminderServiceTestSuite))
}

func (s *RentReminderServiceTestSuite) SetupTest() {
	s.serviceSuite.SetupTest()
	s.may = domain.MonthKey{Year: 2024, Month: 5}
}

func (s *RentReminderServiceTestSuite) bootstrapMay() domain.RentReminder {
	created, err := s.svc.Reminder.CreateMonthlyReminders(s.ctx, s.owner, date(2024, 5, 1))
	s.Require().NoError(err)
	s.Equal(1, created)
	reminders, err := s.svc.Reminder.ListReminders(s.ctx, s.owner, s.may)
	s.Require().NoError(err)
	s.Require().Len(reminders, 1)
	return reminders[0]
}

func (s *RentReminderServiceTestSuite) TestBootstrap_IsIdempotent() {
	r := s.bootstrapMay()
	s.Equal(date(2024, 5, 5), r.ReminderDate)
	s.Equal(date(2024, 5, 10), r.NextReminderDate)
	s.Equal(0, r.ReminderCount)
	s.Equal(domain.DefaultMaxReminders, r.MaxReminders)

	again, err := s.svc.Reminder.CreateMonthlyReminders(s.ctx, s.owner, date(2024, 5, 20))
	s.Require().NoError(err)
	s.Equal(0, again)
	s.Len(s.store.Reminders(), 1)
}

func (s *RentReminderServiceTestSuite) TestProcess_EscalatesToCeiling() {
	s.bootstrapMay()
	s.notifier.On("NotifyRentReminder", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	// Nothing is due before the first reminder date.
	early, err := s.svc.Jobs.ProcessDueReminders(s.ctx, date(2024, 5, 9))
	s.Require().NoError(err)
	s.Equal(domain.ReminderRunResult{}, early)

	first, err := s.svc.Jobs.ProcessDueReminders(s.ctx, date(2024, 5, 10))
	s.Require().NoError(err)
	s.Equal(1, first.Sent)
	r := s.store.Reminders()[0]
	s.Equal(1, r.ReminderCount)
	s.Equal(date(2024, 5, 15), r.NextReminderDate)
	s.Require().NotNil(r.LastSentDate)
	s.Equal(date(2024, 5, 10), *r.LastSentDate)

	day := date(2024, 5, 15)
	for i := 2; i <= domain.DefaultMaxReminders; i++ {
		result, err := s.svc.Jobs.ProcessDueReminders(s.ctx, day)
		s.Require().NoError(err)
		s.Equal(1, result.Sent, "pass %d", i)
		day = day.AddDate(0, 0, domain.ReminderCadenceDays)
	}
	s.Equal(domain.DefaultMaxReminders, s.store.Reminders()[0].ReminderCount)

	seventh, err := s.svc.Jobs.ProcessDueReminders(s.ctx, day)
	s.Require().NoError(err)
	s.Equal(0, seventh.Sent)
	s.Equal(domain.DefaultMaxReminders, s.store.Reminders()[0].ReminderCount)
	s.notifier.AssertNumberOfCalls(s.T(), "NotifyRentReminder", domain.DefaultMaxReminders)
}

func (s *RentReminderServiceTestSuite) TestProcess_SameDayTwiceSendsOnce() {
	s.bootstrapMay()
	s.notifier.On("NotifyRentReminder", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := s.svc.Jobs.ProcessDueReminders(s.ctx, date(2024, 5, 10))
	s.Require().NoError(err)
	second, err := s.svc.Jobs.ProcessDueReminders(s.ctx, date(2024, 5, 10))
	s.Require().NoError(err)
	s.Equal(0, second.Sent)
	s.notifier.AssertNumberOfCalls(s.T(), "NotifyRentReminder", 1)
}

func (s *RentReminderServiceTestSuite) TestProcess_ClosesWhenRentAlreadyIn() {
	s.bootstrapMay()
	// Bypass the ledger service so the reminder flag stays unset.
	s.Require().NoError(s.store.SaveIncome(s.ctx, domain.Income{
		IncomeID:        "income-may",
		OrganizationID:  s.owner.OrganizationID,
		PropertyID:      s.property.PropertyID,
		IncomeType:      domain.IncomeRent,
		TransactionDate: date(2024, 5, 3),
		AuditFields:     domain.NewAuditFields(ownerUserID, s.now),
	}))

	result, err := s.svc.Jobs.ProcessDueReminders(s.ctx, date(2024, 5, 10))
	s.Require().NoError(err)
	s.Equal(domain.ReminderRunResult{Recorded: 1}, result)
	s.True(s.store.Reminders()[0].IsRentRecorded)
	s.Equal(0, s.store.Reminders()[0].ReminderCount)
	s.notifier.AssertNotCalled(s.T(), "NotifyRentReminder", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RentReminderServiceTestSuite) TestProcess_NotifierFailureLeavesReminderDue() {
	s.bootstrapMay()
	s.notifier.On("NotifyRentReminder", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
	s.notifier.On("NotifyRentReminder", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	failed, err := s.svc.Jobs.ProcessDueReminders(s.ctx, date(2024, 5, 10))
	s.Require().NoError(err)
	s.Equal(1, failed.Failed)
	r := s.store.Reminders()[0]
	s.Equal(0, r.ReminderCount)
	s.Equal(date(2024, 5, 10), r.NextReminderDate)

	retried, err := s.svc.Jobs.ProcessDueReminders(s.ctx, date(2024, 5, 11))
	s.Require().NoError(err)
	s.Equal(1, retried.Sent)
	s.Equal(date(2024, 5, 16), s.store.Reminders()[0].NextReminderDate)
}

func (s *RentReminderServiceTestSuite) TestMarkRentRecorded_TwiceEqualsOnce() {
	once, err := s.svc.Reminder.MarkRentRecorded(s.ctx, s.owner, s.property.PropertyID, s.may)
	s.Require().NoError(err)
	s.True(once.IsRentRecorded)

	twice, err := s.svc.Reminder.MarkRentRecorded(s.ctx, s.owner, s.property.PropertyID, s.may)
	s.Require().NoError(err)
	s.Equal(once.RentReminderID, twice.RentReminderID)
	s.True(twice.IsRentRecorded)
	s.Len(s.store.Reminders(), 1)

	created, err := s.svc.Reminder.CreateMonthlyReminders(s.ctx, s.owner, date(2024, 5, 2))
	s.Require().NoError(err)
	s.Equal(0, created)
}

func (s *RentReminderServiceTestSuite) TestMarkRentRecorded_UnknownProperty() {
	_, err := s.svc.Reminder.MarkRentRecorded(s.ctx, s.owner, "missing", s.may)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RentReminderServiceTestSuite) TestRentIncomeClosesMonth() {
	s.bootstrapMay()
	recorded, err := s.svc.Reminder.IsRentRecorded(s.ctx, s.owner, s.property.PropertyID, s.may)
	s.Require().NoError(err)
	s.False(recorded)

	s.createIncome(domain.IncomeRent, 1500, date(2024, 5, 4))

	recorded, err = s.svc.Reminder.IsRentRecorded(s.ctx, s.owner, s.property.PropertyID, s.may)
	s.Require().NoError(err)
	s.True(recorded)
	s.True(s.store.Reminders()[0].IsRentRecorded)
}

func (s *RentReminderServiceTestSuite) TestNonRentIncomeDoesNotCloseMonth() {
	s.bootstrapMay()
	s.createIncome(domain.IncomeLateFee, 50, date(2024, 5, 12))

	recorded, err := s.svc.Reminder.IsRentRecorded(s.ctx, s.owner, s.property.PropertyID, s.may)
	s.Require().NoError(err)
	s.False(recorded)
}
