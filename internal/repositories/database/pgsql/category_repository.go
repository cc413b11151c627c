package pgsql

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) *PgxCategoryRepository {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CategoryReader = (*PgxCategoryRepository)(nil)

var FULL_CATEGORY_SELECT_QUERY = `
SELECT c.category_id, c.name, c.type
FROM categories c
`

func (r *PgxCategoryRepository) getCategories(ctx context.Context, filterQuery string, args ...any) ([]domain.Category, error) {
	rows, err := r.Pool.Query(ctx, FULL_CATEGORY_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query categories")
	}
	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Category])
	if err != nil {
		return nil, mapPgError(err, "failed to collect category rows")
	}
	return categories, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, categoryType *domain.TransactionType) ([]domain.Category, error) {
	if categoryType != nil {
		return r.getCategories(ctx, `WHERE c.type = $1 ORDER BY c.name`, *categoryType)
	}
	return r.getCategories(ctx, `ORDER BY c.name, c.type`)
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	categories, err := r.getCategories(ctx, `WHERE c.category_id = $1`, categoryID)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, mapPgError(pgx.ErrNoRows, "category "+categoryID+" not found")
	}
	return &categories[0], nil
}
