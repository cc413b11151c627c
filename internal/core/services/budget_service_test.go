package services_test

import (
	"testing"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/SscSPs/property_ledger_app/internal/testutil/memstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BudgetServiceTestSuite struct {
	serviceSuite
	other domain.Property
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}

func (s *BudgetServiceTestSuite) SetupTest() {
	s.serviceSuite.SetupTest()
	s.other = s.createProperty("Oak Lodge")
}

func (s *BudgetServiceTestSuite) createQuarterBudget(scope domain.BudgetScope) domain.Budget {
	in := domain.BudgetInput{
		Name:         "Q1 upkeep",
		BudgetAmount: decimal.NewFromInt(3000),
		Period:       domain.BudgetCustom,
		Scope:        scope,
		StartDate:    date(2024, 1, 1),
		EndDate:      ptr(date(2024, 3, 31)),
	}
	if scope == domain.ScopeProperty {
		in.PropertyID = ptr(s.property.PropertyID)
	}
	b, err := s.svc.Budget.CreateBudget(s.ctx, s.owner, in)
	s.Require().NoError(err)
	return *b
}

func (s *BudgetServiceTestSuite) TestAnalyze_PropertyScopeWithoutLines() {
	budget := s.createQuarterBudget(domain.ScopeProperty)
	s.createExpense(domain.ExpenseMaintenance, 900, date(2024, 2, 3))
	s.createExpense(domain.ExpenseUtilities, 600, date(2024, 3, 31))
	// Outside the window or on another property: ignored.
	s.createExpense(domain.ExpenseUtilities, 999, date(2024, 4, 1))
	_, err := s.svc.Ledger.CreateExpense(s.ctx, s.owner, domain.ExpenseInput{
		PropertyID:      s.other.PropertyID,
		Amount:          decimal.NewFromInt(700),
		ExpenseType:     domain.ExpenseRepairs,
		TransactionDate: date(2024, 2, 1),
	})
	s.Require().NoError(err)

	analysis, err := s.svc.Budget.Analyze(s.ctx, s.owner, budget.BudgetID, domain.DateWindow{})
	s.Require().NoError(err)
	s.assertDecimal("3000", analysis.TotalBudgeted)
	s.assertDecimal("1500", analysis.TotalActual)
	s.assertDecimal("-1500", analysis.Variance)
	s.assertDecimal("-50", analysis.VariancePercentage)
	s.False(analysis.IsOverBudget)
	s.assertDecimal("900", analysis.ActualByCategory[domain.ExpenseMaintenance])
	s.assertDecimal("600", analysis.ActualByCategory[domain.ExpenseUtilities])
	s.Equal(date(2024, 1, 1), analysis.StartDate)
	s.Equal(date(2024, 3, 31), analysis.EndDate)
}

func (s *BudgetServiceTestSuite) TestAnalyze_OrganizationScopeCountsEveryProperty() {
	budget := s.createQuarterBudget(domain.ScopeOrganization)
	s.createExpense(domain.ExpenseMaintenance, 900, date(2024, 2, 3))
	_, err := s.svc.Ledger.CreateExpense(s.ctx, s.owner, domain.ExpenseInput{
		PropertyID:      s.other.PropertyID,
		Amount:          decimal.NewFromInt(2500),
		ExpenseType:     domain.ExpenseRepairs,
		TransactionDate: date(2024, 2, 1),
	})
	s.Require().NoError(err)

	analysis, err := s.svc.Budget.Analyze(s.ctx, s.owner, budget.BudgetID, domain.DateWindow{})
	s.Require().NoError(err)
	s.assertDecimal("3400", analysis.TotalActual)
	s.True(analysis.IsOverBudget)
}

func (s *BudgetServiceTestSuite) TestAnalyze_LinesReplaceBudgetAmount() {
	budget := s.createQuarterBudget(domain.ScopeProperty)
	maintenance := memstore.CategoryID(domain.TransactionExpense, string(domain.ExpenseMaintenance))
	utilities := memstore.CategoryID(domain.TransactionExpense, string(domain.ExpenseUtilities))

	_, err := s.svc.Budget.CreateBudgetLine(s.ctx, s.owner, budget.BudgetID, domain.BudgetLineInput{
		CategoryID: maintenance, BudgetedAmount: decimal.NewFromInt(1000),
	})
	s.Require().NoError(err)
	_, err = s.svc.Budget.CreateBudgetLine(s.ctx, s.owner, budget.BudgetID, domain.BudgetLineInput{
		CategoryID: utilities, BudgetedAmount: decimal.NewFromInt(500),
	})
	s.Require().NoError(err)

	s.createExpense(domain.ExpenseMaintenance, 900, date(2024, 2, 3))
	s.createExpense(domain.ExpenseUtilities, 600, date(2024, 3, 1))

	analysis, err := s.svc.Budget.Analyze(s.ctx, s.owner, budget.BudgetID, domain.DateWindow{})
	s.Require().NoError(err)
	s.assertDecimal("1500", analysis.TotalBudgeted)
	s.assertDecimal("0", analysis.VariancePercentage)
	s.Require().Len(analysis.Lines, 2)

	byName := map[string]domain.BudgetLineAnalysis{}
	for _, l := range analysis.Lines {
		byName[l.CategoryName] = l
	}
	s.False(byName["maintenance"].IsOverBudget)
	s.assertDecimal("-10", byName["maintenance"].VariancePercentage)
	s.True(byName["utilities"].IsOverBudget)
	s.assertDecimal("20", byName["utilities"].VariancePercentage)
}

func (s *BudgetServiceTestSuite) TestAnalyze_NarrowerWindow() {
	budget := s.createQuarterBudget(domain.ScopeProperty)
	s.createExpense(domain.ExpenseMaintenance, 900, date(2024, 2, 3))
	s.createExpense(domain.ExpenseUtilities, 600, date(2024, 3, 10))

	analysis, err := s.svc.Budget.Analyze(s.ctx, s.owner, budget.BudgetID, domain.DateWindow{
		From: ptr(date(2024, 3, 1)),
		To:   ptr(date(2024, 3, 31)),
	})
	s.Require().NoError(err)
	s.assertDecimal("600", analysis.TotalActual)

	_, err = s.svc.Budget.Analyze(s.ctx, s.owner, budget.BudgetID, domain.DateWindow{
		From: ptr(date(2024, 3, 31)),
		To:   ptr(date(2024, 3, 1)),
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *BudgetServiceTestSuite) TestBudgetLine_Rules() {
	budget := s.createQuarterBudget(domain.ScopeProperty)
	maintenance := memstore.CategoryID(domain.TransactionExpense, string(domain.ExpenseMaintenance))

	_, err := s.svc.Budget.CreateBudgetLine(s.ctx, s.owner, budget.BudgetID, domain.BudgetLineInput{
		CategoryID: memstore.CategoryID(domain.TransactionIncome, string(domain.IncomeRent)), BudgetedAmount: decimal.NewFromInt(1),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Budget.CreateBudgetLine(s.ctx, s.owner, budget.BudgetID, domain.BudgetLineInput{
		CategoryID: "unknown", BudgetedAmount: decimal.NewFromInt(1),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Budget.CreateBudgetLine(s.ctx, s.owner, budget.BudgetID, domain.BudgetLineInput{
		CategoryID: maintenance, BudgetedAmount: decimal.NewFromInt(-1),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	line, err := s.svc.Budget.CreateBudgetLine(s.ctx, s.owner, budget.BudgetID, domain.BudgetLineInput{
		CategoryID: maintenance, BudgetedAmount: decimal.NewFromInt(100),
	})
	s.Require().NoError(err)

	_, err = s.svc.Budget.CreateBudgetLine(s.ctx, s.owner, budget.BudgetID, domain.BudgetLineInput{
		CategoryID: maintenance, BudgetedAmount: decimal.NewFromInt(50),
	})
	s.ErrorIs(err, apperrors.ErrConflict)

	_, err = s.svc.Budget.CreateBudgetLine(s.ctx, s.owner, "missing", domain.BudgetLineInput{
		CategoryID: maintenance, BudgetedAmount: decimal.NewFromInt(50),
	})
	s.ErrorIs(err, apperrors.ErrNotFound)

	updated, err := s.svc.Budget.UpdateBudgetLine(s.ctx, s.owner, budget.BudgetID, line.BudgetLineID, domain.BudgetLineInput{
		CategoryID: maintenance, BudgetedAmount: decimal.NewFromInt(250),
	})
	s.Require().NoError(err)
	s.assertDecimal("250", updated.BudgetedAmount)

	s.Require().NoError(s.svc.Budget.DeleteBudget(s.ctx, s.owner, budget.BudgetID))
	_, err = s.svc.Budget.ListBudgetLines(s.ctx, s.owner, budget.BudgetID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *BudgetServiceTestSuite) TestCreateBudget_DerivesEndDateAndValidates() {
	monthly, err := s.svc.Budget.CreateBudget(s.ctx, s.owner, domain.BudgetInput{
		Name:         "January",
		BudgetAmount: decimal.NewFromInt(100),
		Period:       domain.BudgetMonthly,
		Scope:        domain.ScopeOrganization,
		StartDate:    date(2024, 1, 15),
	})
	s.Require().NoError(err)
	s.Equal(date(2024, 2, 14), monthly.EndDate)

	_, err = s.svc.Budget.CreateBudget(s.ctx, s.owner, domain.BudgetInput{
		Name:         "Scope mismatch",
		BudgetAmount: decimal.NewFromInt(100),
		Period:       domain.BudgetYearly,
		Scope:        domain.ScopeProperty,
		StartDate:    date(2024, 1, 1),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Budget.CreateBudget(s.ctx, s.owner, domain.BudgetInput{
		Name:         "Backwards",
		BudgetAmount: decimal.NewFromInt(100),
		Period:       domain.BudgetCustom,
		Scope:        domain.ScopeOrganization,
		StartDate:    date(2024, 3, 1),
		EndDate:      ptr(date(2024, 2, 1)),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	byProperty, err := s.svc.Budget.ListBudgets(s.ctx, s.owner, ptr(s.property.PropertyID))
	s.Require().NoError(err)
	s.Empty(byProperty)
}
