package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
)

// budgetService manages budgets and their lines and analyzes them against expenses.
type budgetService struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepositoryFacade
	propertyRepo portsrepo.PropertyReader
	categoryRepo portsrepo.CategoryReader
	expenseRepo  portsrepo.ExpenseReader
}

// NewBudgetService creates a new budget service.
func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	propertyRepo portsrepo.PropertyReader,
	categoryRepo portsrepo.CategoryReader,
	expenseRepo portsrepo.ExpenseReader,
	options ...ServiceOption,
) portssvc.BudgetSvcFacade {
	return &budgetService{
		BaseService:  newBaseService(options),
		budgetRepo:   budgetRepo,
		propertyRepo: propertyRepo,
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateBudget(ctx context.Context, tc domain.TenancyContext, in domain.BudgetInput) (*domain.Budget, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	budget, err := domain.NewBudget(s.GenerateID(), tc, in, s.Now())
	if err != nil {
		return nil, err
	}
	if budget.PropertyID != nil {
		if _, err := s.propertyRepo.FindPropertyByID(ctx, tc.OrganizationID, *budget.PropertyID); err != nil {
			return nil, err
		}
	}
	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("organization_id", tc.OrganizationID))
		return nil, err
	}
	s.LogInfo(ctx, "Budget created", slog.String("budget_id", budget.BudgetID))
	return &budget, nil
}

func (s *budgetService) GetBudget(ctx context.Context, tc domain.TenancyContext, budgetID string) (*domain.Budget, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.budgetRepo.FindBudgetByID(ctx, tc.OrganizationID, budgetID)
}

func (s *budgetService) ListBudgets(ctx context.Context, tc domain.TenancyContext, propertyID *string) ([]domain.Budget, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	var (
		budgets []domain.Budget
		err     error
	)
	if propertyID != nil && *propertyID != "" {
		budgets, err = s.budgetRepo.ListBudgetsByProperty(ctx, tc.OrganizationID, *propertyID)
	} else {
		budgets, err = s.budgetRepo.ListBudgetsByOrganization(ctx, tc.OrganizationID)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("organization_id", tc.OrganizationID))
		return nil, err
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, tc domain.TenancyContext, budgetID string, in domain.BudgetInput) (*domain.Budget, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	budget, err := s.budgetRepo.FindBudgetByID(ctx, tc.OrganizationID, budgetID)
	if err != nil {
		return nil, err
	}
	if in.PropertyID != nil {
		if _, err := s.propertyRepo.FindPropertyByID(ctx, tc.OrganizationID, *in.PropertyID); err != nil {
			return nil, err
		}
	}
	budget.Apply(in)
	budget.Touch(tc.UserID, s.Now())
	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		return nil, err
	}
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, tc domain.TenancyContext, budgetID string) error {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return err
	}
	if err := s.budgetRepo.DeleteBudget(ctx, tc.OrganizationID, budgetID); err != nil {
		if logWorthy(err) {
			s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		}
		return err
	}
	s.LogInfo(ctx, "Budget deleted", slog.String("budget_id", budgetID))
	return nil
}

// requireExpenseCategory checks that categoryID names an expense category.
func (s *budgetService) requireExpenseCategory(ctx context.Context, categoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if isNotFound(err) {
			return apperrors.NewValidationFailedError("unknown category " + categoryID)
		}
		return err
	}
	if category.Type != domain.TransactionExpense {
		return apperrors.NewValidationFailedError("budget lines require an expense category")
	}
	return nil
}

func (s *budgetService) CreateBudgetLine(ctx context.Context, tc domain.TenancyContext, budgetID string, in domain.BudgetLineInput) (*domain.BudgetLine, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	budget, err := s.budgetRepo.FindBudgetByID(ctx, tc.OrganizationID, budgetID)
	if err != nil {
		return nil, err
	}
	line, err := domain.NewBudgetLine(s.GenerateID(), *budget, tc.UserID, in, s.Now())
	if err != nil {
		return nil, err
	}
	if err := s.requireExpenseCategory(ctx, line.CategoryID); err != nil {
		return nil, err
	}
	if err := s.budgetRepo.SaveBudgetLine(ctx, line); err != nil {
		s.LogError(ctx, err, "Failed to save budget line", slog.String("budget_id", budgetID))
		return nil, err
	}
	return &line, nil
}

func (s *budgetService) ListBudgetLines(ctx context.Context, tc domain.TenancyContext, budgetID string) ([]domain.BudgetLine, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	if _, err := s.budgetRepo.FindBudgetByID(ctx, tc.OrganizationID, budgetID); err != nil {
		return nil, err
	}
	lines, err := s.budgetRepo.ListBudgetLines(ctx, tc.OrganizationID, budgetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budget lines", slog.String("budget_id", budgetID))
		return nil, err
	}
	if lines == nil {
		return []domain.BudgetLine{}, nil
	}
	return lines, nil
}

func (s *budgetService) UpdateBudgetLine(ctx context.Context, tc domain.TenancyContext, budgetID, lineID string, in domain.BudgetLineInput) (*domain.BudgetLine, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	line, err := s.budgetRepo.FindBudgetLineByID(ctx, tc.OrganizationID, budgetID, lineID)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != line.CategoryID {
		if err := s.requireExpenseCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
	}
	line.CategoryID = in.CategoryID
	line.BudgetedAmount = in.BudgetedAmount
	line.Notes = in.Notes
	line.Touch(tc.UserID, s.Now())
	if err := s.budgetRepo.UpdateBudgetLine(ctx, *line); err != nil {
		s.LogError(ctx, err, "Failed to update budget line", slog.String("budget_line_id", lineID))
		return nil, err
	}
	return line, nil
}

func (s *budgetService) DeleteBudgetLine(ctx context.Context, tc domain.TenancyContext, budgetID, lineID string) error {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return err
	}
	return s.budgetRepo.DeleteBudgetLine(ctx, tc.OrganizationID, budgetID, lineID)
}

func (s *budgetService) Analyze(ctx context.Context, tc domain.TenancyContext, budgetID string, window domain.DateWindow) (*domain.BudgetAnalysis, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	budget, err := s.budgetRepo.FindBudgetByID(ctx, tc.OrganizationID, budgetID)
	if err != nil {
		return nil, err
	}

	if window.From == nil {
		start := budget.StartDate
		window.From = &start
	}
	if window.To == nil {
		end := budget.EndDate
		window.To = &end
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	lines, err := s.budgetRepo.ListBudgetLines(ctx, tc.OrganizationID, budgetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budget lines for analysis", slog.String("budget_id", budgetID))
		return nil, err
	}
	categories := make(map[string]domain.Category, len(lines))
	for _, l := range lines {
		if _, seen := categories[l.CategoryID]; seen {
			continue
		}
		c, err := s.categoryRepo.FindCategoryByID(ctx, l.CategoryID)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		categories[l.CategoryID] = *c
	}

	filter := domain.LedgerFilter{OrganizationID: tc.OrganizationID, Window: window}
	if budget.Scope == domain.ScopeProperty {
		filter.PropertyID = budget.PropertyID
	}
	expenses, err := s.expenseRepo.ListExpenses(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses for analysis", slog.String("budget_id", budgetID))
		return nil, err
	}

	analysis := domain.AnalyzeBudget(*budget, window, lines, categories, expenses)
	s.LogDebug(ctx, "Budget analyzed",
		slog.String("budget_id", budgetID),
		slog.String("total_actual", analysis.TotalActual.String()),
		slog.Bool("is_over_budget", analysis.IsOverBudget))
	return &analysis, nil
}
