package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// IncomeReader defines read operations for realized incomes
type IncomeReader interface {
	FindIncomeByID(ctx context.Context, organizationID, incomeID string) (*domain.Income, error)

	// ListIncomes returns every income matching the filter ordered by transaction date.
	ListIncomes(ctx context.Context, filter domain.LedgerFilter) ([]domain.Income, error)

	// ListIncomesPage returns one page of incomes, newest first, and the token of the next page.
	ListIncomesPage(ctx context.Context, organizationID string, propertyID *string, limit int, nextToken *string) ([]domain.Income, *string, error)

	// ExistsMatchingIncome reports whether an income with the same property, amount and date exists.
	ExistsMatchingIncome(ctx context.Context, key domain.MatchKey) (bool, error)

	// ExistsRentIncomeInMonth reports whether a rent income was recorded for the property in month.
	ExistsRentIncomeInMonth(ctx context.Context, organizationID, propertyID string, month domain.MonthKey) (bool, error)
}

// IncomeWriter defines write operations for realized incomes
type IncomeWriter interface {
	SaveIncome(ctx context.Context, income domain.Income) error
	UpdateIncome(ctx context.Context, income domain.Income) error
	DeleteIncome(ctx context.Context, organizationID, incomeID string) error
}

// IncomeRepositoryFacade combines all income-related repository interfaces
type IncomeRepositoryFacade interface {
	IncomeReader
	IncomeWriter
}

// ExpenseReader defines read operations for realized expenses
type ExpenseReader interface {
	FindExpenseByID(ctx context.Context, organizationID, expenseID string) (*domain.Expense, error)

	// ListExpenses returns every expense matching the filter ordered by transaction date.
	ListExpenses(ctx context.Context, filter domain.LedgerFilter) ([]domain.Expense, error)

	// ListExpensesPage returns one page of expenses, newest first, and the token of the next page.
	ListExpensesPage(ctx context.Context, organizationID string, propertyID *string, limit int, nextToken *string) ([]domain.Expense, *string, error)

	// ExistsMatchingExpense reports whether an expense with the same property, amount and date exists.
	ExistsMatchingExpense(ctx context.Context, key domain.MatchKey) (bool, error)
}

// ExpenseWriter defines write operations for realized expenses
type ExpenseWriter interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, organizationID, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
