package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RecurringServiceTestSuite struct {
	serviceSuite
}

func TestRecurringServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecurringServiceTestSuite))
}

func (s *RecurringServiceTestSuite) createRentTemplate(start time.Time, end *time.Time) domain.RecurringTransaction {
	r, err := s.svc.Recurring.CreateRecurring(s.ctx, s.owner, domain.RecurringInput{
		PropertyID:      s.property.PropertyID,
		TransactionType: domain.TransactionIncome,
		IncomeType:      ptr(domain.IncomeRent),
		Amount:          decimal.NewFromInt(1500),
		Description:     "Monthly rent",
		Interval:        domain.IntervalMonthly,
		StartDate:       start,
		EndDate:         end,
	})
	s.Require().NoError(err)
	return *r
}

func (s *RecurringServiceTestSuite) TestCreateRecurring_Validation() {
	_, err := s.svc.Recurring.CreateRecurring(s.ctx, s.owner, domain.RecurringInput{
		PropertyID:      s.property.PropertyID,
		TransactionType: domain.TransactionIncome,
		ExpenseType:     ptr(domain.ExpenseRepairs),
		Amount:          decimal.NewFromInt(10),
		Interval:        domain.IntervalMonthly,
		StartDate:       date(2024, 1, 1),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Recurring.CreateRecurring(s.ctx, s.owner, domain.RecurringInput{
		PropertyID:      "missing",
		TransactionType: domain.TransactionIncome,
		IncomeType:      ptr(domain.IncomeRent),
		Amount:          decimal.NewFromInt(10),
		Interval:        domain.IntervalMonthly,
		StartDate:       date(2024, 1, 1),
	})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RecurringServiceTestSuite) TestExpandThenConfirmThenExpandAgain() {
	s.createRentTemplate(date(2024, 1, 5), nil)
	today := date(2024, 4, 7)

	first, err := s.svc.Recurring.ExpandPending(s.ctx, s.owner, today)
	s.Require().NoError(err)
	s.Equal(1, first.Created)

	pendings, err := s.svc.Pending.ListPending(s.ctx, s.owner, nil)
	s.Require().NoError(err)
	s.Require().Len(pendings, 1)
	s.Equal(date(2024, 4, 5), pendings[0].TransactionDate)
	s.Equal("2024-04", pendings[0].MonthKey)
	s.assertDecimal("1500", pendings[0].Amount)

	second, err := s.svc.Recurring.ExpandPending(s.ctx, s.owner, today)
	s.Require().NoError(err)
	s.Equal(0, second.Created)
	s.Equal(1, second.Skipped)
	s.Len(s.store.Pendings(), 1)

	result, err := s.svc.Pending.ConfirmPending(s.ctx, s.owner, pendings[0].PendingTransactionID)
	s.Require().NoError(err)
	s.Require().NotNil(result.Income)
	s.False(result.AlreadyRealized)
	s.assertDecimal("1500", result.Income.Amount)
	s.Equal(date(2024, 4, 5), result.Income.TransactionDate)
	s.Empty(s.store.Pendings())

	third, err := s.svc.Recurring.ExpandPending(s.ctx, s.owner, today)
	s.Require().NoError(err)
	s.Equal(0, third.Created)
	s.Empty(s.store.Pendings())
	s.Len(s.store.Incomes(), 1)
}

func (s *RecurringServiceTestSuite) TestExpand_SkipsWhenRealizedRowExists() {
	s.createRentTemplate(date(2024, 1, 5), nil)
	s.createIncome(domain.IncomeRent, 1500, date(2024, 4, 5))

	result, err := s.svc.Recurring.ExpandPending(s.ctx, s.owner, date(2024, 4, 7))
	s.Require().NoError(err)
	s.Equal(0, result.Created)
	s.Empty(s.store.Pendings())
}

func (s *RecurringServiceTestSuite) TestExpand_EndedTemplateIsSkipped() {
	s.createRentTemplate(date(2024, 1, 5), ptr(date(2024, 3, 31)))

	result, err := s.svc.Recurring.ExpandPending(s.ctx, s.owner, date(2024, 4, 7))
	s.Require().NoError(err)
	s.Equal(0, result.Created)
	s.Equal(1, result.Skipped)
	s.Empty(s.store.Pendings())
}

func (s *RecurringServiceTestSuite) TestExpand_ClampsDayOfMonth() {
	s.createRentTemplate(date(2024, 1, 31), nil)

	_, err := s.svc.Recurring.ExpandPending(s.ctx, s.owner, date(2024, 2, 15))
	s.Require().NoError(err)
	pendings := s.store.Pendings()
	s.Require().Len(pendings, 1)
	s.Equal(date(2024, 2, 29), pendings[0].TransactionDate)
}

func (s *RecurringServiceTestSuite) TestDeactivateAndReactivate_NoBackfill() {
	r := s.createRentTemplate(date(2024, 1, 5), nil)
	s.Require().NoError(s.svc.Recurring.DeactivateRecurring(s.ctx, s.owner, r.RecurringTransactionID))

	result, err := s.svc.Recurring.ExpandPending(s.ctx, s.owner, date(2024, 4, 7))
	s.Require().NoError(err)
	s.Equal(domain.ExpansionResult{}, result)

	active, err := s.svc.Recurring.ListRecurring(s.ctx, s.owner, true)
	s.Require().NoError(err)
	s.Empty(active)

	s.Require().NoError(s.svc.Recurring.ReactivateRecurring(s.ctx, s.owner, r.RecurringTransactionID))
	result, err = s.svc.Recurring.ExpandPending(s.ctx, s.owner, date(2024, 6, 10))
	s.Require().NoError(err)
	s.Equal(1, result.Created)

	pendings := s.store.Pendings()
	s.Require().Len(pendings, 1)
	s.Equal(date(2024, 6, 5), pendings[0].TransactionDate)
}

func (s *RecurringServiceTestSuite) TestDeleteTemplate_PendingsSurvive() {
	r := s.createRentTemplate(date(2024, 1, 5), nil)
	_, err := s.svc.Recurring.ExpandPending(s.ctx, s.owner, date(2024, 4, 7))
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Recurring.DeleteRecurring(s.ctx, s.owner, r.RecurringTransactionID))
	_, err = s.svc.Recurring.GetRecurring(s.ctx, s.owner, r.RecurringTransactionID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	pendings := s.store.Pendings()
	s.Require().Len(pendings, 1)
	s.Equal(r.RecurringTransactionID, pendings[0].RecurringTransactionID)
}

func (s *RecurringServiceTestSuite) TestExpand_FailuresAreCountedAndPassContinues() {
	s.createRentTemplate(date(2024, 1, 5), nil)
	s.createRentTemplate(date(2024, 2, 10), nil)
	s.store.Fail["SavePending"] = errors.New("connection reset")

	result, err := s.svc.Recurring.ExpandPending(s.ctx, s.owner, date(2024, 4, 12))
	s.Require().NoError(err)
	s.Equal(2, result.Failed)
	s.Equal(0, result.Created)
}

func (s *RecurringServiceTestSuite) TestExpand_LastGeneratedFailureIsBestEffort() {
	s.createRentTemplate(date(2024, 1, 5), nil)
	s.store.Fail["SetLastGeneratedOn"] = errors.New("timeout")

	first, err := s.svc.Recurring.ExpandPending(s.ctx, s.owner, date(2024, 4, 7))
	s.Require().NoError(err)
	s.Equal(1, first.Created)

	second, err := s.svc.Recurring.ExpandPending(s.ctx, s.owner, date(2024, 4, 7))
	s.Require().NoError(err)
	s.Equal(0, second.Created)
	s.Len(s.store.Pendings(), 1)
}

func (s *RecurringServiceTestSuite) TestJobsExpandAll_CoversEveryOrganization() {
	s.createRentTemplate(date(2024, 1, 5), nil)

	orgB, err := s.svc.Tenancy.CreateOrganization(s.ctx, "user-b", "Org B", nil)
	s.Require().NoError(err)
	tcB, err := s.svc.Tenancy.Resolve(s.ctx, "user-b", orgB.OrganizationID)
	s.Require().NoError(err)
	propB, err := s.svc.Property.CreateProperty(s.ctx, tcB, domain.PropertyInput{Name: "B1", PropertyType: domain.PropertyApartment})
	s.Require().NoError(err)
	_, err = s.svc.Recurring.CreateRecurring(s.ctx, tcB, domain.RecurringInput{
		PropertyID:      propB.PropertyID,
		TransactionType: domain.TransactionExpense,
		ExpenseType:     ptr(domain.ExpenseMortgage),
		Amount:          decimal.NewFromInt(800),
		Interval:        domain.IntervalMonthly,
		StartDate:       date(2024, 1, 1),
	})
	s.Require().NoError(err)

	total, err := s.svc.Jobs.ExpandAll(s.ctx, date(2024, 4, 7))
	s.Require().NoError(err)
	s.Equal(2, total.Created)

	again, err := s.svc.Jobs.ExpandAll(s.ctx, date(2024, 4, 7))
	s.Require().NoError(err)
	s.Equal(0, again.Created)
	s.Equal(2, again.Skipped)

	_, err = s.svc.Jobs.ExpandPending(s.ctx, "", date(2024, 4, 7))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *RecurringServiceTestSuite) TestExpand_ConflictOnSaveCountsAsSkipped() {
	s.createRentTemplate(date(2024, 1, 5), nil)
	s.store.Fail["SavePending"] = apperrors.NewConflictError("pending transaction already exists for this month")

	result, err := s.svc.Recurring.ExpandPending(s.ctx, s.owner, date(2024, 4, 7))
	s.Require().NoError(err)
	s.Equal(domain.ExpansionResult{Created: 0, Skipped: 1, Failed: 0}, result)
	s.Empty(s.store.Pendings())
}

func (s *RecurringServiceTestSuite) TestExpand_EndDateTodayStillMaterializesClampedDue() {
	s.createRentTemplate(date(2024, 1, 31), ptr(date(2024, 2, 15)))

	result, err := s.svc.Recurring.ExpandPending(s.ctx, s.owner, date(2024, 2, 15))
	s.Require().NoError(err)
	s.Equal(1, result.Created)

	pendings := s.store.Pendings()
	s.Require().Len(pendings, 1)
	s.Equal(date(2024, 2, 29), pendings[0].TransactionDate)
}
