package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ledgerService records realized incomes and expenses.
type ledgerService struct {
	BaseService
	incomeRepo   portsrepo.IncomeRepositoryFacade
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	propertyRepo portsrepo.PropertyReader
	rentRecorder rentRecorder
}

// rentRecorder closes a month's rent reminder once rent is in.
type rentRecorder interface {
	markRecorded(ctx context.Context, organizationID, propertyID, userID string, month domain.MonthKey) (*domain.RentReminder, error)
}

// NewLedgerService creates the realized income and expense service. When
// reminders is non-nil, recording a rent income also marks the month's rent as recorded.
func NewLedgerService(
	incomeRepo portsrepo.IncomeRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	propertyRepo portsrepo.PropertyReader,
	reminders portssvc.RentReminderSvcFacade,
	options ...ServiceOption,
) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		BaseService:  newBaseService(options),
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
		propertyRepo: propertyRepo,
	}
	if r, ok := reminders.(rentRecorder); ok {
		svc.rentRecorder = r
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func pageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func (s *ledgerService) CreateIncome(ctx context.Context, tc domain.TenancyContext, in domain.IncomeInput) (*domain.Income, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	income, err := domain.NewIncome(s.GenerateID(), tc, in, s.Now())
	if err != nil {
		return nil, err
	}
	if _, err := s.propertyRepo.FindPropertyByID(ctx, tc.OrganizationID, income.PropertyID); err != nil {
		return nil, err
	}
	if err := s.incomeRepo.SaveIncome(ctx, income); err != nil {
		s.LogError(ctx, err, "Failed to save income", slog.String("property_id", income.PropertyID))
		return nil, err
	}
	s.markRentIfNeeded(ctx, tc, income)
	s.LogInfo(ctx, "Income recorded", slog.String("income_id", income.IncomeID), slog.String("property_id", income.PropertyID))
	return &income, nil
}

// markRentIfNeeded closes the reminder of a rent income's month. Failures are
// logged only: the rent-recorded predicate also looks at incomes directly.
func (s *ledgerService) markRentIfNeeded(ctx context.Context, tc domain.TenancyContext, income domain.Income) {
	if s.rentRecorder == nil || income.IncomeType != domain.IncomeRent {
		return
	}
	if _, err := s.rentRecorder.markRecorded(ctx, tc.OrganizationID, income.PropertyID, tc.UserID, domain.MonthKeyOf(income.TransactionDate)); err != nil {
		s.LogError(ctx, err, "Failed to mark rent recorded",
			slog.String("property_id", income.PropertyID),
			slog.String("month", domain.MonthKeyOf(income.TransactionDate).String()))
	}
}

func (s *ledgerService) GetIncome(ctx context.Context, tc domain.TenancyContext, incomeID string) (*domain.Income, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.incomeRepo.FindIncomeByID(ctx, tc.OrganizationID, incomeID)
}

func (s *ledgerService) ListIncomes(ctx context.Context, tc domain.TenancyContext, params portssvc.LedgerPageParams) (*portssvc.IncomePage, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	incomes, next, err := s.incomeRepo.ListIncomesPage(ctx, tc.OrganizationID, params.PropertyID, pageSize(params.Limit), params.NextToken)
	if err != nil {
		if logWorthy(err) {
			s.LogError(ctx, err, "Failed to list incomes", slog.String("organization_id", tc.OrganizationID))
		}
		return nil, err
	}
	if incomes == nil {
		incomes = []domain.Income{}
	}
	return &portssvc.IncomePage{Incomes: incomes, NextToken: next}, nil
}

func (s *ledgerService) UpdateIncome(ctx context.Context, tc domain.TenancyContext, incomeID string, in domain.IncomeInput) (*domain.Income, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	income, err := s.incomeRepo.FindIncomeByID(ctx, tc.OrganizationID, incomeID)
	if err != nil {
		return nil, err
	}
	if in.PropertyID != income.PropertyID {
		if _, err := s.propertyRepo.FindPropertyByID(ctx, tc.OrganizationID, in.PropertyID); err != nil {
			return nil, err
		}
	}
	income.Apply(in)
	income.Touch(tc.UserID, s.Now())
	if err := s.incomeRepo.UpdateIncome(ctx, *income); err != nil {
		s.LogError(ctx, err, "Failed to update income", slog.String("income_id", incomeID))
		return nil, err
	}
	s.markRentIfNeeded(ctx, tc, *income)
	return income, nil
}

func (s *ledgerService) DeleteIncome(ctx context.Context, tc domain.TenancyContext, incomeID string) error {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return err
	}
	if err := s.incomeRepo.DeleteIncome(ctx, tc.OrganizationID, incomeID); err != nil {
		if logWorthy(err) {
			s.LogError(ctx, err, "Failed to delete income", slog.String("income_id", incomeID))
		}
		return err
	}
	return nil
}

func (s *ledgerService) CreateExpense(ctx context.Context, tc domain.TenancyContext, in domain.ExpenseInput) (*domain.Expense, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	expense, err := domain.NewExpense(s.GenerateID(), tc, in, s.Now())
	if err != nil {
		return nil, err
	}
	if _, err := s.propertyRepo.FindPropertyByID(ctx, tc.OrganizationID, expense.PropertyID); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("property_id", expense.PropertyID))
		return nil, err
	}
	s.LogInfo(ctx, "Expense recorded", slog.String("expense_id", expense.ExpenseID), slog.String("property_id", expense.PropertyID))
	return &expense, nil
}

func (s *ledgerService) GetExpense(ctx context.Context, tc domain.TenancyContext, expenseID string) (*domain.Expense, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.expenseRepo.FindExpenseByID(ctx, tc.OrganizationID, expenseID)
}

func (s *ledgerService) ListExpenses(ctx context.Context, tc domain.TenancyContext, params portssvc.LedgerPageParams) (*portssvc.ExpensePage, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	expenses, next, err := s.expenseRepo.ListExpensesPage(ctx, tc.OrganizationID, params.PropertyID, pageSize(params.Limit), params.NextToken)
	if err != nil {
		if logWorthy(err) {
			s.LogError(ctx, err, "Failed to list expenses", slog.String("organization_id", tc.OrganizationID))
		}
		return nil, err
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return &portssvc.ExpensePage{Expenses: expenses, NextToken: next}, nil
}

func (s *ledgerService) UpdateExpense(ctx context.Context, tc domain.TenancyContext, expenseID string, in domain.ExpenseInput) (*domain.Expense, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, tc.OrganizationID, expenseID)
	if err != nil {
		return nil, err
	}
	if in.PropertyID != expense.PropertyID {
		if _, err := s.propertyRepo.FindPropertyByID(ctx, tc.OrganizationID, in.PropertyID); err != nil {
			return nil, err
		}
	}
	expense.Apply(in)
	expense.Touch(tc.UserID, s.Now())
	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, err
	}
	return expense, nil
}

func (s *ledgerService) DeleteExpense(ctx context.Context, tc domain.TenancyContext, expenseID string) error {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return err
	}
	if err := s.expenseRepo.DeleteExpense(ctx, tc.OrganizationID, expenseID); err != nil {
		if logWorthy(err) {
			s.LogError(ctx, err, "Failed to delete expense", slog.String("expense_id", expenseID))
		}
		return err
	}
	return nil
}
