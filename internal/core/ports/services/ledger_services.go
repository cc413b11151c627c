package services

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// LedgerPageParams selects one page of realized rows.
type LedgerPageParams struct {
	PropertyID *string
	Limit      int
	NextToken  *string
}

// IncomePage is one page of incomes.
type IncomePage struct {
	Incomes   []domain.Income `json:"incomes"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ExpensePage is one page of expenses.
type ExpensePage struct {
	Expenses  []domain.Expense `json:"expenses"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// IncomeSvc defines operations on realized incomes
type IncomeSvc interface {
	CreateIncome(ctx context.Context, tc domain.TenancyContext, in domain.IncomeInput) (*domain.Income, error)
	GetIncome(ctx context.Context, tc domain.TenancyContext, incomeID string) (*domain.Income, error)
	ListIncomes(ctx context.Context, tc domain.TenancyContext, params LedgerPageParams) (*IncomePage, error)
	UpdateIncome(ctx context.Context, tc domain.TenancyContext, incomeID string, in domain.IncomeInput) (*domain.Income, error)
	DeleteIncome(ctx context.Context, tc domain.TenancyContext, incomeID string) error
}

// ExpenseSvc defines operations on realized expenses
type ExpenseSvc interface {
	CreateExpense(ctx context.Context, tc domain.TenancyContext, in domain.ExpenseInput) (*domain.Expense, error)
	GetExpense(ctx context.Context, tc domain.TenancyContext, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, tc domain.TenancyContext, params LedgerPageParams) (*ExpensePage, error)
	UpdateExpense(ctx context.Context, tc domain.TenancyContext, expenseID string, in domain.ExpenseInput) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, tc domain.TenancyContext, expenseID string) error
}

// LedgerSvcFacade combines the income and expense services
type LedgerSvcFacade interface {
	IncomeSvc
	ExpenseSvc
}

// CategorySvc exposes the shared category vocabulary
type CategorySvc interface {
	ListCategories(ctx context.Context, categoryType *domain.TransactionType) ([]domain.Category, error)
	GetCategory(ctx context.Context, categoryID string) (*domain.Category, error)
}
