package pgsql

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organizations and memberships.
func newPgxOrganizationRepository(pool *pgxpool.Pool) *PgxOrganizationRepository {
	return &PgxOrganizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxOrganizationRepository implements portsrepo.OrganizationRepositoryFacade
var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

var FULL_ORGANIZATION_SELECT_QUERY = `
SELECT
	o.organization_id, o.name, o.description, o.created_at, o.created_by
FROM organizations o
`

func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, organization domain.Organization, owner domain.Membership) error {
	if err := domain.RequireWriteStamp(organization.OrganizationID, organization.CreatedBy); err != nil {
		return err
	}
	return r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO organizations (organization_id, name, description, created_at, created_by)
			VALUES ($1, $2, $3, $4, $5);`,
			organization.OrganizationID,
			organization.Name,
			organization.Description,
			organization.CreatedAt,
			organization.CreatedBy,
		)
		if err != nil {
			return mapPgError(err, "failed to save organization "+organization.OrganizationID)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO organization_memberships (user_id, organization_id, role, joined_at)
			VALUES ($1, $2, $3, $4);`,
			owner.UserID,
			owner.OrganizationID,
			owner.Role,
			owner.JoinedAt,
		)
		if err != nil {
			return mapPgError(err, "failed to save owner membership of organization "+organization.OrganizationID)
		}
		return nil
	})
}

func (r *PgxOrganizationRepository) SaveMembership(ctx context.Context, membership domain.Membership) error {
	if err := domain.RequireWriteStamp(membership.OrganizationID, membership.UserID); err != nil {
		return err
	}
	query := `
		INSERT INTO organization_memberships (user_id, organization_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, organization_id) DO UPDATE SET role = EXCLUDED.role;
	` // Upsert: Add user or update their role if they already exist
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.OrganizationID,
		membership.Role,
		membership.JoinedAt,
	)
	if err != nil {
		return mapPgError(err, "failed to add/update user "+membership.UserID+" in organization "+membership.OrganizationID)
	}
	return nil
}

func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	rows, err := r.Pool.Query(ctx, FULL_ORGANIZATION_SELECT_QUERY+`WHERE o.organization_id = $1`, organizationID)
	if err != nil {
		return nil, mapPgError(err, "failed to query organization")
	}
	org, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Organization])
	if err != nil {
		return nil, mapPgError(err, "organization not found")
	}
	return &org, nil
}

func (r *PgxOrganizationRepository) FindMembership(ctx context.Context, userID, organizationID string) (*domain.Membership, error) {
	query := `
		SELECT user_id, organization_id, role, joined_at
		FROM organization_memberships
		WHERE user_id = $1 AND organization_id = $2;
	`
	var m domain.Membership
	err := r.Pool.QueryRow(ctx, query, userID, organizationID).Scan(
		&m.UserID,
		&m.OrganizationID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		return nil, mapPgError(err, "membership not found")
	}
	return &m, nil
}

func (r *PgxOrganizationRepository) ListMembershipsByUserID(ctx context.Context, userID string) ([]domain.OrganizationMembership, error) {
	query := `
		SELECT o.organization_id, o.name, o.description, o.created_at, o.created_by, m.role, m.joined_at
		FROM organizations o
		JOIN organization_memberships m ON m.organization_id = o.organization_id
		WHERE m.user_id = $1
		ORDER BY o.name, o.organization_id;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapPgError(err, "failed to query memberships of user "+userID)
	}
	defer rows.Close()

	memberships := []domain.OrganizationMembership{}
	for rows.Next() {
		var om domain.OrganizationMembership
		if err := rows.Scan(
			&om.Organization.OrganizationID,
			&om.Organization.Name,
			&om.Organization.Description,
			&om.Organization.CreatedAt,
			&om.Organization.CreatedBy,
			&om.Role,
			&om.JoinedAt,
		); err != nil {
			return nil, apperrors.NewBackendError("failed to scan membership row", err)
		}
		memberships = append(memberships, om)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "failed to iterate memberships")
	}
	return memberships, nil
}
