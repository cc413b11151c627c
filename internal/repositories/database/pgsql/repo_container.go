package pgsql

import (
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires one pgx repository per table group onto dbPool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
		PropertyRepo:     newPgxPropertyRepository(dbPool),
		IncomeRepo:       newPgxIncomeRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
		CategoryRepo:     newPgxCategoryRepository(dbPool),
		BudgetRepo:       newPgxBudgetRepository(dbPool),
		RecurringRepo:    newPgxRecurringRepository(dbPool),
		PendingRepo:      newPgxPendingRepository(dbPool),
		ReminderRepo:     newPgxRentReminderRepository(dbPool),
	}
}
