package services

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// TenancyResolverSvc resolves the tenancy context of a request
type TenancyResolverSvc interface {
	// Resolve returns the context for userID acting in organizationID.
	// Fails with ErrUnauthenticated when userID is empty and ErrNotAMember without a membership.
	Resolve(ctx context.Context, userID, organizationID string) (domain.TenancyContext, error)

	// ListMemberships lists the user's organizations and roles ordered by organization name.
	ListMemberships(ctx context.Context, userID string) ([]domain.OrganizationMembership, error)
}

// OrganizationWriterSvc defines write operations for organizations
type OrganizationWriterSvc interface {
	// CreateOrganization creates an organization with userID installed as owner.
	CreateOrganization(ctx context.Context, userID, name string, description *string) (*domain.Organization, error)

	// AddMember grants targetUserID a role. Requires admin or owner.
	AddMember(ctx context.Context, tc domain.TenancyContext, targetUserID string, role domain.Role) error
}

// OrganizationAuthorizerSvc defines operations for organization authorization
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserAction checks that userID holds at least requiredRole in organizationID.
	AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.Role) error
}

// TenancySvcFacade combines all tenancy-related service interfaces
type TenancySvcFacade interface {
	TenancyResolverSvc
	OrganizationWriterSvc
	OrganizationAuthorizerSvc
}
