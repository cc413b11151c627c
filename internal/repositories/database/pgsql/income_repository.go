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

type PgxIncomeRepository struct {
	BaseRepository
}

// newPgxIncomeRepository creates a new repository for realized incomes.
func newPgxIncomeRepository(pool *pgxpool.Pool) *PgxIncomeRepository {
	return &PgxIncomeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.IncomeRepositoryFacade = (*PgxIncomeRepository)(nil)

var FULL_INCOME_SELECT_QUERY = `
SELECT
	i.income_id, i.organization_id, i.property_id, i.amount, i.income_type,
	i.description, i.transaction_date,
	i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
FROM incomes i
`

func (r *PgxIncomeRepository) getIncomes(ctx context.Context, filterQuery string, args ...any) ([]domain.Income, error) {
	rows, err := r.Pool.Query(ctx, FULL_INCOME_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query incomes")
	}
	incomes, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Income])
	if err != nil {
		return nil, mapPgError(err, "failed to collect income rows")
	}
	return incomes, nil
}

func (r *PgxIncomeRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	if err := domain.RequireWriteStamp(income.OrganizationID, income.CreatedBy); err != nil {
		return err
	}
	query := `
		INSERT INTO incomes (
			income_id, organization_id, property_id, amount, income_type, description, transaction_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		SELECT $1, p.organization_id, p.property_id, $4, $5, $6, $7, $8, $9, $10, $11
		FROM properties p
		WHERE p.organization_id = $2 AND p.property_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query,
		income.IncomeID,
		income.OrganizationID,
		income.PropertyID,
		income.Amount,
		income.IncomeType,
		income.Description,
		income.TransactionDate,
		income.CreatedAt,
		income.CreatedBy,
		income.LastUpdatedAt,
		income.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save income "+income.IncomeID)
	}
	return requireProperty(tag, income.PropertyID)
}

func (r *PgxIncomeRepository) FindIncomeByID(ctx context.Context, organizationID, incomeID string) (*domain.Income, error) {
	incomes, err := r.getIncomes(ctx, `WHERE i.organization_id = $1 AND i.income_id = $2`, organizationID, incomeID)
	if err != nil {
		return nil, err
	}
	if len(incomes) == 0 {
		return nil, mapPgError(pgx.ErrNoRows, "income "+incomeID+" not found")
	}
	return &incomes[0], nil
}

func (r *PgxIncomeRepository) ListIncomes(ctx context.Context, filter domain.LedgerFilter) ([]domain.Income, error) {
	w := ledgerWhere("i", filter)
	return r.getIncomes(ctx, w.String()+"ORDER BY i.transaction_date, i.income_id", w.args...)
}

func (r *PgxIncomeRepository) ListIncomesPage(ctx context.Context, organizationID string, propertyID *string, limit int, nextToken *string) ([]domain.Income, *string, error) {
	w, err := pageWhere("i", "income_id", organizationID, propertyID, nextToken)
	if err != nil {
		return nil, nil, err
	}
	query := w.String() + fmt.Sprintf("ORDER BY i.transaction_date DESC, i.created_at DESC, i.income_id DESC LIMIT %d", limit+1)
	incomes, err := r.getIncomes(ctx, query, w.args...)
	if err != nil {
		return nil, nil, err
	}
	incomes, token := nextPageToken(incomes, limit, func(i domain.Income) pagination.Cursor {
		return pagination.Cursor{TransactionDate: i.TransactionDate, CreatedAt: i.CreatedAt, ID: i.IncomeID}
	})
	return incomes, token, nil
}

func (r *PgxIncomeRepository) ExistsMatchingIncome(ctx context.Context, key domain.MatchKey) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM incomes
			WHERE organization_id = $1 AND property_id = $2 AND amount = $3 AND transaction_date = $4
		);
	`
	var exists bool
	err := r.Pool.QueryRow(ctx, query, key.OrganizationID, key.PropertyID, key.Amount, domain.DateOf(key.Date)).Scan(&exists)
	if err != nil {
		return false, mapPgError(err, "failed to check for matching income")
	}
	return exists, nil
}

func (r *PgxIncomeRepository) ExistsRentIncomeInMonth(ctx context.Context, organizationID, propertyID string, month domain.MonthKey) (bool, error) {
	first, last := month.Window()
	query := `
		SELECT EXISTS (
			SELECT 1 FROM incomes
			WHERE organization_id = $1 AND property_id = $2 AND income_type = $3
			  AND transaction_date BETWEEN $4 AND $5
		);
	`
	var exists bool
	err := r.Pool.QueryRow(ctx, query, organizationID, propertyID, domain.IncomeRent, first, last).Scan(&exists)
	if err != nil {
		return false, mapPgError(err, "failed to check for rent income")
	}
	return exists, nil
}

func (r *PgxIncomeRepository) UpdateIncome(ctx context.Context, income domain.Income) error {
	if err := domain.RequireWriteStamp(income.OrganizationID, income.LastUpdatedBy); err != nil {
		return err
	}
	query := `
		UPDATE incomes i
		SET property_id = p.property_id, amount = $1, income_type = $2, description = $3, transaction_date = $4,
			last_updated_at = $5, last_updated_by = $6
		FROM properties p
		WHERE i.organization_id = $7 AND i.income_id = $8
		  AND p.organization_id = i.organization_id AND p.property_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		income.Amount,
		income.IncomeType,
		income.Description,
		income.TransactionDate,
		income.LastUpdatedAt,
		income.LastUpdatedBy,
		income.OrganizationID,
		income.IncomeID,
		income.PropertyID,
	)
	if err != nil {
		return mapPgError(err, "failed to update income "+income.IncomeID)
	}
	return requireAffected(tag, "income "+income.IncomeID)
}

func (r *PgxIncomeRepository) DeleteIncome(ctx context.Context, organizationID, incomeID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM incomes WHERE organization_id = $1 AND income_id = $2;`, organizationID, incomeID)
	if err != nil {
		return mapPgError(err, "failed to delete income "+incomeID)
	}
	return requireAffected(tag, "income "+incomeID)
}
