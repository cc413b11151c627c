package services

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// BudgetReaderSvc defines read operations for budgets
type BudgetReaderSvc interface {
	GetBudget(ctx context.Context, tc domain.TenancyContext, budgetID string) (*domain.Budget, error)

	// ListBudgets lists the organization's budgets, or a property's when propertyID is set.
	ListBudgets(ctx context.Context, tc domain.TenancyContext, propertyID *string) ([]domain.Budget, error)
}

// BudgetWriterSvc defines write operations for budgets
type BudgetWriterSvc interface {
	CreateBudget(ctx context.Context, tc domain.TenancyContext, in domain.BudgetInput) (*domain.Budget, error)
	UpdateBudget(ctx context.Context, tc domain.TenancyContext, budgetID string, in domain.BudgetInput) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, tc domain.TenancyContext, budgetID string) error
}

// BudgetLineSvc defines operations on the lines of a budget
type BudgetLineSvc interface {
	CreateBudgetLine(ctx context.Context, tc domain.TenancyContext, budgetID string, in domain.BudgetLineInput) (*domain.BudgetLine, error)
	ListBudgetLines(ctx context.Context, tc domain.TenancyContext, budgetID string) ([]domain.BudgetLine, error)
	UpdateBudgetLine(ctx context.Context, tc domain.TenancyContext, budgetID, lineID string, in domain.BudgetLineInput) (*domain.BudgetLine, error)
	DeleteBudgetLine(ctx context.Context, tc domain.TenancyContext, budgetID, lineID string) error
}

// BudgetAnalyzerSvc compares a budget with realized spend
type BudgetAnalyzerSvc interface {
	// Analyze compares the budget with expenses in window. Unset bounds default to the budget's own dates.
	Analyze(ctx context.Context, tc domain.TenancyContext, budgetID string, window domain.DateWindow) (*domain.BudgetAnalysis, error)
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
	BudgetLineSvc
	BudgetAnalyzerSvc
}
