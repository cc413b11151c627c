package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// OrganizationReader defines read operations for organizations and memberships
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListMembershipsByUserID retrieves every organization the user belongs to, ordered by name.
	ListMembershipsByUserID(ctx context.Context, userID string) ([]domain.OrganizationMembership, error)

	// FindMembership retrieves the user's membership in an organization.
	FindMembership(ctx context.Context, userID, organizationID string) (*domain.Membership, error)
}

// OrganizationWriter defines write operations for organizations and memberships
type OrganizationWriter interface {
	// SaveOrganization persists a new organization together with its owner membership.
	SaveOrganization(ctx context.Context, organization domain.Organization, owner domain.Membership) error

	// SaveMembership adds a user to an organization or updates their role.
	SaveMembership(ctx context.Context, membership domain.Membership) error
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
