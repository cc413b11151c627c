package pgsql

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPropertyRepository struct {
	BaseRepository
}

// newPgxPropertyRepository creates a new repository for property data.
func newPgxPropertyRepository(pool *pgxpool.Pool) *PgxPropertyRepository {
	return &PgxPropertyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PropertyRepositoryFacade = (*PgxPropertyRepository)(nil)

var FULL_PROPERTY_SELECT_QUERY = `
SELECT
	p.property_id, p.organization_id, p.name, p.address, p.property_type,
	p.purchase_price, p.purchase_date, p.monthly_rent, p.description,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM properties p
`

func (r *PgxPropertyRepository) getProperties(ctx context.Context, filterQuery string, args ...any) ([]domain.Property, error) {
	rows, err := r.Pool.Query(ctx, FULL_PROPERTY_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query properties")
	}
	properties, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Property])
	if err != nil {
		return nil, mapPgError(err, "failed to collect property rows")
	}
	return properties, nil
}

func (r *PgxPropertyRepository) SaveProperty(ctx context.Context, property domain.Property) error {
	if err := domain.RequireWriteStamp(property.OrganizationID, property.CreatedBy); err != nil {
		return err
	}
	query := `
		INSERT INTO properties (
			property_id, organization_id, name, address, property_type,
			purchase_price, purchase_date, monthly_rent, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		property.PropertyID,
		property.OrganizationID,
		property.Name,
		property.Address,
		property.PropertyType,
		property.PurchasePrice,
		property.PurchaseDate,
		property.MonthlyRent,
		property.Description,
		property.CreatedAt,
		property.CreatedBy,
		property.LastUpdatedAt,
		property.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save property "+property.PropertyID)
}

func (r *PgxPropertyRepository) FindPropertyByID(ctx context.Context, organizationID, propertyID string) (*domain.Property, error) {
	properties, err := r.getProperties(ctx, `WHERE p.organization_id = $1 AND p.property_id = $2`, organizationID, propertyID)
	if err != nil {
		return nil, err
	}
	if len(properties) == 0 {
		return nil, mapPgError(pgx.ErrNoRows, "property "+propertyID+" not found")
	}
	return &properties[0], nil
}

func (r *PgxPropertyRepository) ListPropertiesByOrganization(ctx context.Context, organizationID string) ([]domain.Property, error) {
	return r.getProperties(ctx, `WHERE p.organization_id = $1 ORDER BY p.name, p.property_id`, organizationID)
}

func (r *PgxPropertyRepository) UpdateProperty(ctx context.Context, property domain.Property) error {
	if err := domain.RequireWriteStamp(property.OrganizationID, property.LastUpdatedBy); err != nil {
		return err
	}
	query := `
		UPDATE properties
		SET name = $1, address = $2, property_type = $3, purchase_price = $4, purchase_date = $5,
			monthly_rent = $6, description = $7, last_updated_at = $8, last_updated_by = $9
		WHERE organization_id = $10 AND property_id = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		property.Name,
		property.Address,
		property.PropertyType,
		property.PurchasePrice,
		property.PurchaseDate,
		property.MonthlyRent,
		property.Description,
		property.LastUpdatedAt,
		property.LastUpdatedBy,
		property.OrganizationID,
		property.PropertyID,
	)
	if err != nil {
		return mapPgError(err, "failed to update property "+property.PropertyID)
	}
	return requireAffected(tag, "property "+property.PropertyID)
}

// DeleteProperty removes the property; its ledger rows, templates, pendings,
// reminders and budgets go with it through the foreign keys.
func (r *PgxPropertyRepository) DeleteProperty(ctx context.Context, organizationID, propertyID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM properties WHERE organization_id = $1 AND property_id = $2;`, organizationID, propertyID)
	if err != nil {
		return mapPgError(err, "failed to delete property "+propertyID)
	}
	return requireAffected(tag, "property "+propertyID)
}
