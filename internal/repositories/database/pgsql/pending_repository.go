package pgsql

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPendingRepository struct {
	BaseRepository
}

// newPgxPendingRepository creates a new repository for pending transactions.
func newPgxPendingRepository(pool *pgxpool.Pool) *PgxPendingRepository {
	return &PgxPendingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PendingRepositoryFacade = (*PgxPendingRepository)(nil)

var FULL_PENDING_SELECT_QUERY = `
SELECT
	t.pending_transaction_id, t.organization_id, t.property_id, t.recurring_transaction_id,
	t.transaction_type, t.income_type, t.expense_type, t.amount, t.description,
	t.transaction_date, t.month_key, t.is_confirmed,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM pending_transactions t
`

func (r *PgxPendingRepository) getPending(ctx context.Context, filterQuery string, args ...any) ([]domain.PendingTransaction, error) {
	rows, err := r.Pool.Query(ctx, FULL_PENDING_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query pending transactions")
	}
	pendings, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.PendingTransaction])
	if err != nil {
		return nil, mapPgError(err, "failed to collect pending transaction rows")
	}
	return pendings, nil
}

// SavePending inserts a pending; a second one for the same template and month
// violates uq_pending_transactions_recurring_month and fails with a conflict.
func (r *PgxPendingRepository) SavePending(ctx context.Context, pending domain.PendingTransaction) error {
	if err := domain.RequireWriteStamp(pending.OrganizationID, pending.CreatedBy); err != nil {
		return err
	}
	query := `
		INSERT INTO pending_transactions (
			pending_transaction_id, organization_id, property_id, recurring_transaction_id,
			transaction_type, income_type, expense_type, amount, description,
			transaction_date, month_key, is_confirmed,
			created_at, created_by, last_updated_at, last_updated_by
		)
		SELECT $1, p.organization_id, p.property_id, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		FROM properties p
		WHERE p.organization_id = $2 AND p.property_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query,
		pending.PendingTransactionID,
		pending.OrganizationID,
		pending.PropertyID,
		pending.RecurringTransactionID,
		pending.TransactionType,
		pending.IncomeType,
		pending.ExpenseType,
		pending.Amount,
		pending.Description,
		pending.TransactionDate,
		pending.MonthKey,
		pending.IsConfirmed,
		pending.CreatedAt,
		pending.CreatedBy,
		pending.LastUpdatedAt,
		pending.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save pending transaction for "+pending.MonthKey)
	}
	return requireProperty(tag, pending.PropertyID)
}

func (r *PgxPendingRepository) FindPendingByID(ctx context.Context, organizationID, pendingID string) (*domain.PendingTransaction, error) {
	pendings, err := r.getPending(ctx, `WHERE t.organization_id = $1 AND t.pending_transaction_id = $2`, organizationID, pendingID)
	if err != nil {
		return nil, err
	}
	if len(pendings) == 0 {
		return nil, mapPgError(pgx.ErrNoRows, "pending transaction "+pendingID+" not found")
	}
	return &pendings[0], nil
}

func (r *PgxPendingRepository) ListPending(ctx context.Context, organizationID string, transactionType *domain.TransactionType) ([]domain.PendingTransaction, error) {
	if transactionType != nil {
		return r.getPending(ctx, `WHERE t.organization_id = $1 AND t.transaction_type = $2 ORDER BY t.transaction_date, t.pending_transaction_id`,
			organizationID, *transactionType)
	}
	return r.getPending(ctx, `WHERE t.organization_id = $1 ORDER BY t.transaction_date, t.pending_transaction_id`, organizationID)
}

func (r *PgxPendingRepository) ExistsPendingForMonth(ctx context.Context, organizationID, recurringID string, month domain.MonthKey) (bool, error) {
	first, last := month.Window()
	query := `
		SELECT EXISTS (
			SELECT 1 FROM pending_transactions
			WHERE organization_id = $1 AND recurring_transaction_id = $2
			  AND (month_key = $3 OR transaction_date BETWEEN $4 AND $5)
		);
	`
	var exists bool
	err := r.Pool.QueryRow(ctx, query, organizationID, recurringID, month.String(), first, last).Scan(&exists)
	if err != nil {
		return false, mapPgError(err, "failed to check for pending transaction")
	}
	return exists, nil
}

func (r *PgxPendingRepository) UpdatePending(ctx context.Context, pending domain.PendingTransaction) error {
	if err := domain.RequireWriteStamp(pending.OrganizationID, pending.LastUpdatedBy); err != nil {
		return err
	}
	query := `
		UPDATE pending_transactions
		SET income_type = $1, expense_type = $2, amount = $3, description = $4, transaction_date = $5,
			is_confirmed = $6, last_updated_at = $7, last_updated_by = $8
		WHERE organization_id = $9 AND pending_transaction_id = $10;
	`
	tag, err := r.Pool.Exec(ctx, query,
		pending.IncomeType,
		pending.ExpenseType,
		pending.Amount,
		pending.Description,
		pending.TransactionDate,
		pending.IsConfirmed,
		pending.LastUpdatedAt,
		pending.LastUpdatedBy,
		pending.OrganizationID,
		pending.PendingTransactionID,
	)
	if err != nil {
		return mapPgError(err, "failed to update pending transaction "+pending.PendingTransactionID)
	}
	return requireAffected(tag, "pending transaction "+pending.PendingTransactionID)
}

func (r *PgxPendingRepository) DeletePending(ctx context.Context, organizationID, pendingID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM pending_transactions WHERE organization_id = $1 AND pending_transaction_id = $2;`,
		organizationID, pendingID)
	if err != nil {
		return mapPgError(err, "failed to delete pending transaction "+pendingID)
	}
	return requireAffected(tag, "pending transaction "+pendingID)
}
