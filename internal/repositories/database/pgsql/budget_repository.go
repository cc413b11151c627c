package pgsql

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budgets and their lines.
func newPgxBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

var FULL_BUDGET_SELECT_QUERY = `
SELECT
	b.budget_id, b.organization_id, b.property_id, b.name, b.description, b.budget_amount,
	b.period, b.scope, b.start_date, b.end_date,
	b.created_at, b.created_by, b.last_updated_at, b.last_updated_by
FROM budgets b
`

var FULL_BUDGET_LINE_SELECT_QUERY = `
SELECT
	l.budget_line_id, l.budget_id, l.organization_id, l.category_id, l.budgeted_amount, l.notes,
	l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
FROM budget_lines l
`

func (r *PgxBudgetRepository) getBudgets(ctx context.Context, filterQuery string, args ...any) ([]domain.Budget, error) {
	rows, err := r.Pool.Query(ctx, FULL_BUDGET_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query budgets")
	}
	budgets, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Budget])
	if err != nil {
		return nil, mapPgError(err, "failed to collect budget rows")
	}
	return budgets, nil
}

func (r *PgxBudgetRepository) getBudgetLines(ctx context.Context, filterQuery string, args ...any) ([]domain.BudgetLine, error) {
	rows, err := r.Pool.Query(ctx, FULL_BUDGET_LINE_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query budget lines")
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.BudgetLine])
	if err != nil {
		return nil, mapPgError(err, "failed to collect budget line rows")
	}
	return lines, nil
}

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	if err := domain.RequireWriteStamp(budget.OrganizationID, budget.CreatedBy); err != nil {
		return err
	}
	query := `
		INSERT INTO budgets (
			budget_id, organization_id, property_id, name, description, budget_amount,
			period, scope, start_date, end_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		budget.BudgetID,
		budget.OrganizationID,
		budget.PropertyID,
		budget.Name,
		budget.Description,
		budget.BudgetAmount,
		budget.Period,
		budget.Scope,
		budget.StartDate,
		budget.EndDate,
		budget.CreatedAt,
		budget.CreatedBy,
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save budget "+budget.BudgetID)
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, organizationID, budgetID string) (*domain.Budget, error) {
	budgets, err := r.getBudgets(ctx, `WHERE b.organization_id = $1 AND b.budget_id = $2`, organizationID, budgetID)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return nil, mapPgError(pgx.ErrNoRows, "budget "+budgetID+" not found")
	}
	return &budgets[0], nil
}

func (r *PgxBudgetRepository) ListBudgetsByOrganization(ctx context.Context, organizationID string) ([]domain.Budget, error) {
	return r.getBudgets(ctx, `WHERE b.organization_id = $1 ORDER BY b.start_date DESC, b.name`, organizationID)
}

func (r *PgxBudgetRepository) ListBudgetsByProperty(ctx context.Context, organizationID, propertyID string) ([]domain.Budget, error) {
	return r.getBudgets(ctx, `WHERE b.organization_id = $1 AND b.property_id = $2 ORDER BY b.start_date DESC, b.name`, organizationID, propertyID)
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	if err := domain.RequireWriteStamp(budget.OrganizationID, budget.LastUpdatedBy); err != nil {
		return err
	}
	query := `
		UPDATE budgets
		SET property_id = $1, name = $2, description = $3, budget_amount = $4, period = $5, scope = $6,
			start_date = $7, end_date = $8, last_updated_at = $9, last_updated_by = $10
		WHERE organization_id = $11 AND budget_id = $12;
	`
	tag, err := r.Pool.Exec(ctx, query,
		budget.PropertyID,
		budget.Name,
		budget.Description,
		budget.BudgetAmount,
		budget.Period,
		budget.Scope,
		budget.StartDate,
		budget.EndDate,
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
		budget.OrganizationID,
		budget.BudgetID,
	)
	if err != nil {
		return mapPgError(err, "failed to update budget "+budget.BudgetID)
	}
	return requireAffected(tag, "budget "+budget.BudgetID)
}

// DeleteBudget removes the budget; its lines cascade.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, organizationID, budgetID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE organization_id = $1 AND budget_id = $2;`, organizationID, budgetID)
	if err != nil {
		return mapPgError(err, "failed to delete budget "+budgetID)
	}
	return requireAffected(tag, "budget "+budgetID)
}

func (r *PgxBudgetRepository) SaveBudgetLine(ctx context.Context, line domain.BudgetLine) error {
	if err := domain.RequireWriteStamp(line.OrganizationID, line.CreatedBy); err != nil {
		return err
	}
	query := `
		INSERT INTO budget_lines (
			budget_line_id, budget_id, organization_id, category_id, budgeted_amount, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		line.BudgetLineID,
		line.BudgetID,
		line.OrganizationID,
		line.CategoryID,
		line.BudgetedAmount,
		line.Notes,
		line.CreatedAt,
		line.CreatedBy,
		line.LastUpdatedAt,
		line.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save budget line for category "+line.CategoryID)
}

func (r *PgxBudgetRepository) FindBudgetLineByID(ctx context.Context, organizationID, budgetID, lineID string) (*domain.BudgetLine, error) {
	lines, err := r.getBudgetLines(ctx, `WHERE l.organization_id = $1 AND l.budget_id = $2 AND l.budget_line_id = $3`, organizationID, budgetID, lineID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, mapPgError(pgx.ErrNoRows, "budget line "+lineID+" not found")
	}
	return &lines[0], nil
}

func (r *PgxBudgetRepository) ListBudgetLines(ctx context.Context, organizationID, budgetID string) ([]domain.BudgetLine, error) {
	return r.getBudgetLines(ctx, `WHERE l.organization_id = $1 AND l.budget_id = $2 ORDER BY l.created_at, l.budget_line_id`, organizationID, budgetID)
}

func (r *PgxBudgetRepository) UpdateBudgetLine(ctx context.Context, line domain.BudgetLine) error {
	if err := domain.RequireWriteStamp(line.OrganizationID, line.LastUpdatedBy); err != nil {
		return err
	}
	query := `
		UPDATE budget_lines
		SET category_id = $1, budgeted_amount = $2, notes = $3, last_updated_at = $4, last_updated_by = $5
		WHERE organization_id = $6 AND budget_id = $7 AND budget_line_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		line.CategoryID,
		line.BudgetedAmount,
		line.Notes,
		line.LastUpdatedAt,
		line.LastUpdatedBy,
		line.OrganizationID,
		line.BudgetID,
		line.BudgetLineID,
	)
	if err != nil {
		return mapPgError(err, "failed to update budget line "+line.BudgetLineID)
	}
	return requireAffected(tag, "budget line "+line.BudgetLineID)
}

func (r *PgxBudgetRepository) DeleteBudgetLine(ctx context.Context, organizationID, budgetID, lineID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM budget_lines WHERE organization_id = $1 AND budget_id = $2 AND budget_line_id = $3;`,
		organizationID, budgetID, lineID)
	if err != nil {
		return mapPgError(err, "failed to delete budget line "+lineID)
	}
	return requireAffected(tag, "budget line "+lineID)
}
