package services_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PendingServiceTestSuite struct {
	serviceSuite
	pending domain.PendingTransaction
}

func TestPendingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PendingServiceTestSuite))
}

func (s *PendingServiceTestSuite) SetupTest() {
	s.serviceSuite.SetupTest()
	_, err := s.svc.Recurring.CreateRecurring(s.ctx, s.owner, domain.RecurringInput{
		PropertyID:      s.property.PropertyID,
		TransactionType: domain.TransactionIncome,
		IncomeType:      ptr(domain.IncomeRent),
		Amount:          decimal.NewFromInt(1500),
		Interval:        domain.IntervalMonthly,
		StartDate:       date(2024, 1, 5),
	})
	s.Require().NoError(err)
	_, err = s.svc.Recurring.ExpandPending(s.ctx, s.owner, date(2024, 4, 7))
	s.Require().NoError(err)
	pendings := s.store.Pendings()
	s.Require().Len(pendings, 1)
	s.pending = pendings[0]
}

func (s *PendingServiceTestSuite) TestConfirm_MarksRentRecorded() {
	_, err := s.svc.Pending.ConfirmPending(s.ctx, s.owner, s.pending.PendingTransactionID)
	s.Require().NoError(err)

	recorded, err := s.svc.Reminder.IsRentRecorded(s.ctx, s.owner, s.property.PropertyID, domain.MonthKey{Year: 2024, Month: 4})
	s.Require().NoError(err)
	s.True(recorded)

	reminders := s.store.Reminders()
	s.Require().Len(reminders, 1)
	s.True(reminders[0].IsRentRecorded)
	s.Equal(4, reminders[0].ReminderMonth)
}

func (s *PendingServiceTestSuite) TestConfirm_ConvergesAfterFailedDelete() {
	s.store.Fail["DeletePending"] = errors.New("connection reset")
	_, err := s.svc.Pending.ConfirmPending(s.ctx, s.owner, s.pending.PendingTransactionID)
	s.Require().Error(err)
	s.Len(s.store.Incomes(), 1)
	s.Len(s.store.Pendings(), 1)

	delete(s.store.Fail, "DeletePending")
	result, err := s.svc.Pending.ConfirmPending(s.ctx, s.owner, s.pending.PendingTransactionID)
	s.Require().NoError(err)
	s.True(result.AlreadyRealized)
	s.Nil(result.Income)
	s.Len(s.store.Incomes(), 1)
	s.Empty(s.store.Pendings())
}

func (s *PendingServiceTestSuite) TestConfirm_Unknown() {
	_, err := s.svc.Pending.ConfirmPending(s.ctx, s.owner, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PendingServiceTestSuite) TestEdit_ThenConfirmUsesEditedValues() {
	amount := decimal.RequireFromString("1600.499")
	edited, err := s.svc.Pending.EditPending(s.ctx, s.owner, s.pending.PendingTransactionID, domain.PendingPatch{
		Amount:      &amount,
		Description: ptr("April rent, adjusted"),
	})
	s.Require().NoError(err)
	s.assertDecimal("1600.5", edited.Amount)

	result, err := s.svc.Pending.ConfirmPending(s.ctx, s.owner, s.pending.PendingTransactionID)
	s.Require().NoError(err)
	s.Require().NotNil(result.Income)
	s.assertDecimal("1600.5", result.Income.Amount)
	s.Equal("April rent, adjusted", result.Income.Description)
}

func (s *PendingServiceTestSuite) TestEdit_InvalidPatchLeavesRowUnchanged() {
	negative := decimal.NewFromInt(-5)
	_, err := s.svc.Pending.EditPending(s.ctx, s.owner, s.pending.PendingTransactionID, domain.PendingPatch{
		Amount:      &negative,
		Description: ptr("should not stick"),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Pending.EditPending(s.ctx, s.owner, s.pending.PendingTransactionID, domain.PendingPatch{
		ExpenseType: ptr(domain.ExpenseRepairs),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	stored, err := s.svc.Pending.GetPending(s.ctx, s.owner, s.pending.PendingTransactionID)
	s.Require().NoError(err)
	s.assertDecimal("1500", stored.Amount)
	s.Equal(s.pending.Description, stored.Description)
}

func (s *PendingServiceTestSuite) TestDiscard_DoesNotReappearThisMonth() {
	s.Require().NoError(s.svc.Pending.DiscardPending(s.ctx, s.owner, s.pending.PendingTransactionID))
	s.Empty(s.store.Pendings())

	result, err := s.svc.Recurring.ExpandPending(s.ctx, s.owner, date(2024, 4, 20))
	s.Require().NoError(err)
	s.Equal(0, result.Created)

	err = s.svc.Pending.DiscardPending(s.ctx, s.owner, s.pending.PendingTransactionID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PendingServiceTestSuite) TestListPending_FiltersByType() {
	expenses, err := s.svc.Pending.ListPending(s.ctx, s.owner, ptr(domain.TransactionExpense))
	s.Require().NoError(err)
	s.Empty(expenses)

	incomes, err := s.svc.Pending.ListPending(s.ctx, s.owner, ptr(domain.TransactionIncome))
	s.Require().NoError(err)
	s.Len(incomes, 1)

	_, err = s.svc.Pending.ListPending(s.ctx, s.owner, ptr(domain.TransactionType("transfer")))
	s.ErrorIs(err, apperrors.ErrValidation)
}
