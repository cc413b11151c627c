package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// BudgetReader defines read operations for budgets
type BudgetReader interface {
	FindBudgetByID(ctx context.Context, organizationID, budgetID string) (*domain.Budget, error)
	ListBudgetsByOrganization(ctx context.Context, organizationID string) ([]domain.Budget, error)
	ListBudgetsByProperty(ctx context.Context, organizationID, propertyID string) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budgets
type BudgetWriter interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudget removes the budget and, with it, its lines.
	DeleteBudget(ctx context.Context, organizationID, budgetID string) error
}

// BudgetLineManager defines operations on the lines of a budget
type BudgetLineManager interface {
	SaveBudgetLine(ctx context.Context, line domain.BudgetLine) error
	FindBudgetLineByID(ctx context.Context, organizationID, budgetID, lineID string) (*domain.BudgetLine, error)
	ListBudgetLines(ctx context.Context, organizationID, budgetID string) ([]domain.BudgetLine, error)
	UpdateBudgetLine(ctx context.Context, line domain.BudgetLine) error
	DeleteBudgetLine(ctx context.Context, organizationID, budgetID, lineID string) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
	BudgetLineManager
}
