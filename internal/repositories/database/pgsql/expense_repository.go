package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for realized expenses.
func newPgxExpenseRepository(pool *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

var FULL_EXPENSE_SELECT_QUERY = `
SELECT
	e.expense_id, e.organization_id, e.property_id, e.amount, e.expense_type,
	e.description, e.transaction_date, e.receipt_url,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
FROM expenses e
`

func (r *PgxExpenseRepository) getExpenses(ctx context.Context, filterQuery string, args ...any) ([]domain.Expense, error) {
	rows, err := r.Pool.Query(ctx, FULL_EXPENSE_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query expenses")
	}
	expenses, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Expense])
	if err != nil {
		return nil, mapPgError(err, "failed to collect expense rows")
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	if err := domain.RequireWriteStamp(expense.OrganizationID, expense.CreatedBy); err != nil {
		return err
	}
	query := `
		INSERT INTO expenses (
			expense_id, organization_id, property_id, amount, expense_type, description, transaction_date,
			receipt_url, created_at, created_by, last_updated_at, last_updated_by
		)
		SELECT $1, p.organization_id, p.property_id, $4, $5, $6, $7, $8, $9, $10, $11, $12
		FROM properties p
		WHERE p.organization_id = $2 AND p.property_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.OrganizationID,
		expense.PropertyID,
		expense.Amount,
		expense.ExpenseType,
		expense.Description,
		expense.TransactionDate,
		expense.ReceiptURL,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save expense "+expense.ExpenseID)
	}
	return requireProperty(tag, expense.PropertyID)
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, organizationID, expenseID string) (*domain.Expense, error) {
	expenses, err := r.getExpenses(ctx, `WHERE e.organization_id = $1 AND e.expense_id = $2`, organizationID, expenseID)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, mapPgError(pgx.ErrNoRows, "expense "+expenseID+" not found")
	}
	return &expenses[0], nil
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter domain.LedgerFilter) ([]domain.Expense, error) {
	w := ledgerWhere("e", filter)
	return r.getExpenses(ctx, w.String()+"ORDER BY e.transaction_date, e.expense_id", w.args...)
}

func (r *PgxExpenseRepository) ListExpensesPage(ctx context.Context, organizationID string, propertyID *string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	w, err := pageWhere("e", "expense_id", organizationID, propertyID, nextToken)
	if err != nil {
		return nil, nil, err
	}
	query := w.String() + fmt.Sprintf("ORDER BY e.transaction_date DESC, e.created_at DESC, e.expense_id DESC LIMIT %d", limit+1)
	expenses, err := r.getExpenses(ctx, query, w.args...)
	if err != nil {
		return nil, nil, err
	}
	expenses, token := nextPageToken(expenses, limit, func(e domain.Expense) pagination.Cursor {
		return pagination.Cursor{TransactionDate: e.TransactionDate, CreatedAt: e.CreatedAt, ID: e.ExpenseID}
	})
	return expenses, token, nil
}

func (r *PgxExpenseRepository) ExistsMatchingExpense(ctx context.Context, key domain.MatchKey) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM expenses
			WHERE organization_id = $1 AND property_id = $2 AND amount = $3 AND transaction_date = $4
		);
	`
	var exists bool
	err := r.Pool.QueryRow(ctx, query, key.OrganizationID, key.PropertyID, key.Amount, domain.DateOf(key.Date)).Scan(&exists)
	if err != nil {
		return false, mapPgError(err, "failed to check for matching expense")
	}
	return exists, nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	if err := domain.RequireWriteStamp(expense.OrganizationID, expense.LastUpdatedBy); err != nil {
		return err
	}
	query := `
		UPDATE expenses e
		SET property_id = p.property_id, amount = $1, expense_type = $2, description = $3, transaction_date = $4,
			receipt_url = $5, last_updated_at = $6, last_updated_by = $7
		FROM properties p
		WHERE e.organization_id = $8 AND e.expense_id = $9
		  AND p.organization_id = e.organization_id AND p.property_id = $10;
	`
	tag, err := r.Pool.Exec(ctx, query,
		expense.Amount,
		expense.ExpenseType,
		expense.Description,
		expense.TransactionDate,
		expense.ReceiptURL,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
		expense.OrganizationID,
		expense.ExpenseID,
		expense.PropertyID,
	)
	if err != nil {
		return mapPgError(err, "failed to update expense "+expense.ExpenseID)
	}
	return requireAffected(tag, "expense "+expense.ExpenseID)
}

func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, organizationID, expenseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE organization_id = $1 AND expense_id = $2;`, organizationID, expenseID)
	if err != nil {
		return mapPgError(err, "failed to delete expense "+expenseID)
	}
	return requireAffected(tag, "expense "+expenseID)
}
