package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRecurringRepository struct {
	BaseRepository
}

// newPgxRecurringRepository creates a new repository for recurring templates.
func newPgxRecurringRepository(pool *pgxpool.Pool) *PgxRecurringRepository {
	return &PgxRecurringRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RecurringRepositoryFacade = (*PgxRecurringRepository)(nil)

var FULL_RECURRING_SELECT_QUERY = `
SELECT
	r.recurring_transaction_id, r.organization_id, r.property_id, r.transaction_type,
	r.income_type, r.expense_type, r.amount, r.description, r.recurrence_interval,
	r.start_date, r.end_date, r.is_active, r.last_generated_on,
	r.created_at, r.created_by, r.last_updated_at, r.last_updated_by
FROM recurring_transactions r
`

func (r *PgxRecurringRepository) getRecurring(ctx context.Context, filterQuery string, args ...any) ([]domain.RecurringTransaction, error) {
	rows, err := r.Pool.Query(ctx, FULL_RECURRING_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query recurring transactions")
	}
	templates, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.RecurringTransaction])
	if err != nil {
		return nil, mapPgError(err, "failed to collect recurring transaction rows")
	}
	return templates, nil
}

func (r *PgxRecurringRepository) SaveRecurring(ctx context.Context, recurring domain.RecurringTransaction) error {
	if err := domain.RequireWriteStamp(recurring.OrganizationID, recurring.CreatedBy); err != nil {
		return err
	}
	query := `
		INSERT INTO recurring_transactions (
			recurring_transaction_id, organization_id, property_id, transaction_type,
			income_type, expense_type, amount, description, recurrence_interval,
			start_date, end_date, is_active, last_generated_on,
			created_at, created_by, last_updated_at, last_updated_by
		)
		SELECT $1, p.organization_id, p.property_id, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		FROM properties p
		WHERE p.organization_id = $2 AND p.property_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query,
		recurring.RecurringTransactionID,
		recurring.OrganizationID,
		recurring.PropertyID,
		recurring.TransactionType,
		recurring.IncomeType,
		recurring.ExpenseType,
		recurring.Amount,
		recurring.Description,
		recurring.Interval,
		recurring.StartDate,
		recurring.EndDate,
		recurring.IsActive,
		recurring.LastGeneratedOn,
		recurring.CreatedAt,
		recurring.CreatedBy,
		recurring.LastUpdatedAt,
		recurring.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save recurring transaction "+recurring.RecurringTransactionID)
	}
	return requireProperty(tag, recurring.PropertyID)
}

func (r *PgxRecurringRepository) FindRecurringByID(ctx context.Context, organizationID, recurringID string) (*domain.RecurringTransaction, error) {
	templates, err := r.getRecurring(ctx, `WHERE r.organization_id = $1 AND r.recurring_transaction_id = $2`, organizationID, recurringID)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, mapPgError(pgx.ErrNoRows, "recurring transaction "+recurringID+" not found")
	}
	return &templates[0], nil
}

func (r *PgxRecurringRepository) ListRecurringByOrganization(ctx context.Context, organizationID string) ([]domain.RecurringTransaction, error) {
	return r.getRecurring(ctx, `WHERE r.organization_id = $1 ORDER BY r.start_date, r.recurring_transaction_id`, organizationID)
}

func (r *PgxRecurringRepository) ListActiveRecurringByOrganization(ctx context.Context, organizationID string) ([]domain.RecurringTransaction, error) {
	return r.getRecurring(ctx, `WHERE r.organization_id = $1 AND r.is_active ORDER BY r.start_date, r.recurring_transaction_id`, organizationID)
}

func (r *PgxRecurringRepository) ListOrganizationsWithActiveRecurring(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT DISTINCT organization_id FROM recurring_transactions WHERE is_active ORDER BY organization_id;`)
	if err != nil {
		return nil, mapPgError(err, "failed to query organizations with active recurring transactions")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, mapPgError(err, "failed to collect organization ids")
	}
	return ids, nil
}

// UpdateRecurring writes the user-editable fields. is_active and
// last_generated_on are owned by SetRecurringActive and SetLastGeneratedOn.
func (r *PgxRecurringRepository) UpdateRecurring(ctx context.Context, recurring domain.RecurringTransaction) error {
	if err := domain.RequireWriteStamp(recurring.OrganizationID, recurring.LastUpdatedBy); err != nil {
		return err
	}
	query := `
		UPDATE recurring_transactions t
		SET property_id = p.property_id, transaction_type = $1, income_type = $2, expense_type = $3,
			amount = $4, description = $5, recurrence_interval = $6, start_date = $7, end_date = $8,
			last_updated_at = $9, last_updated_by = $10
		FROM properties p
		WHERE t.organization_id = $11 AND t.recurring_transaction_id = $12
		  AND p.organization_id = t.organization_id AND p.property_id = $13;
	`
	tag, err := r.Pool.Exec(ctx, query,
		recurring.TransactionType,
		recurring.IncomeType,
		recurring.ExpenseType,
		recurring.Amount,
		recurring.Description,
		recurring.Interval,
		recurring.StartDate,
		recurring.EndDate,
		recurring.LastUpdatedAt,
		recurring.LastUpdatedBy,
		recurring.OrganizationID,
		recurring.RecurringTransactionID,
		recurring.PropertyID,
	)
	if err != nil {
		return mapPgError(err, "failed to update recurring transaction "+recurring.RecurringTransactionID)
	}
	return requireAffected(tag, "recurring transaction "+recurring.RecurringTransactionID)
}

func (r *PgxRecurringRepository) SetRecurringActive(ctx context.Context, organizationID, recurringID string, active bool, userID string, now time.Time) error {
	if err := domain.RequireWriteStamp(organizationID, userID); err != nil {
		return err
	}
	query := `
		UPDATE recurring_transactions
		SET is_active = $1, last_updated_at = $2, last_updated_by = $3
		WHERE organization_id = $4 AND recurring_transaction_id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, active, now, userID, organizationID, recurringID)
	if err != nil {
		return mapPgError(err, "failed to update status of recurring transaction "+recurringID)
	}
	return requireAffected(tag, "recurring transaction "+recurringID)
}

func (r *PgxRecurringRepository) SetLastGeneratedOn(ctx context.Context, organizationID, recurringID string, on time.Time) error {
	query := `
		UPDATE recurring_transactions
		SET last_generated_on = $1
		WHERE organization_id = $2 AND recurring_transaction_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, domain.DateOf(on), organizationID, recurringID)
	if err != nil {
		return mapPgError(err, "failed to set last generated date of recurring transaction "+recurringID)
	}
	return requireAffected(tag, "recurring transaction "+recurringID)
}

// DeleteRecurring removes the template. Pending transactions keep their weak reference to it.
func (r *PgxRecurringRepository) DeleteRecurring(ctx context.Context, organizationID, recurringID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM recurring_transactions WHERE organization_id = $1 AND recurring_transaction_id = $2;`,
		organizationID, recurringID)
	if err != nil {
		return mapPgError(err, "failed to delete recurring transaction "+recurringID)
	}
	return requireAffected(tag, "recurring transaction "+recurringID)
}
