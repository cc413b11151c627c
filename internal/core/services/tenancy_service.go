package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
)

// tenancyService resolves memberships and manages organizations.
type tenancyService struct {
	BaseService
	orgRepo portsrepo.OrganizationRepositoryFacade
}

// NewTenancyService creates the service that resolves tenancy contexts. It is
// its own authorizer.
func NewTenancyService(orgRepo portsrepo.OrganizationRepositoryFacade, options ...ServiceOption) portssvc.TenancySvcFacade {
	svc := &tenancyService{
		BaseService: newBaseService(options),
		orgRepo:     orgRepo,
	}
	svc.OrganizationAuthorizer = svc
	return svc
}

var _ portssvc.TenancySvcFacade = (*tenancyService)(nil)

func (s *tenancyService) Resolve(ctx context.Context, userID, organizationID string) (domain.TenancyContext, error) {
	if userID == "" {
		return domain.TenancyContext{}, apperrors.ErrUnauthenticated
	}
	if organizationID == "" {
		return domain.TenancyContext{}, apperrors.NewNotAMemberError("no organization selected")
	}

	membership, err := s.orgRepo.FindMembership(ctx, userID, organizationID)
	if err != nil {
		if isNotFound(err) {
			s.GetLogger(ctx).Warn("User is not a member of organization",
				slog.String("user_id", userID),
				slog.String("organization_id", organizationID))
			return domain.TenancyContext{}, apperrors.NewNotAMemberError("user is not a member of organization " + organizationID)
		}
		s.LogError(ctx, err, "Failed to resolve membership",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return domain.TenancyContext{}, err
	}
	return domain.NewTenancyContext(*membership), nil
}

func (s *tenancyService) ListMemberships(ctx context.Context, userID string) ([]domain.OrganizationMembership, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	memberships, err := s.orgRepo.ListMembershipsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list memberships", slog.String("user_id", userID))
		return nil, err
	}
	if memberships == nil {
		return []domain.OrganizationMembership{}, nil
	}
	s.LogDebug(ctx, "Memberships listed", slog.String("user_id", userID), slog.Int("count", len(memberships)))
	return memberships, nil
}

func (s *tenancyService) CreateOrganization(ctx context.Context, userID, name string, description *string) (*domain.Organization, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	now := s.Now()
	org, err := domain.NewOrganization(s.GenerateID(), name, description, userID, now)
	if err != nil {
		return nil, err
	}
	owner := domain.Membership{
		UserID:         userID,
		OrganizationID: org.OrganizationID,
		Role:           domain.RoleOwner,
		JoinedAt:       now,
	}
	if err := s.orgRepo.SaveOrganization(ctx, org, owner); err != nil {
		s.LogError(ctx, err, "Failed to create organization", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Organization created", slog.String("organization_id", org.OrganizationID), slog.String("owner_user_id", userID))
	return &org, nil
}

func (s *tenancyService) AddMember(ctx context.Context, tc domain.TenancyContext, targetUserID string, role domain.Role) error {
	if err := s.Authorize(ctx, tc, domain.RoleAdmin); err != nil {
		return err
	}
	if targetUserID == "" {
		return apperrors.NewValidationFailedError("target user id is required")
	}
	if !role.IsValid() {
		return apperrors.NewValidationFailedError("invalid role: " + string(role))
	}
	if role == domain.RoleOwner && tc.Role != domain.RoleOwner {
		return apperrors.NewForbiddenError("only owners can grant the owner role")
	}

	membership := domain.Membership{
		UserID:         targetUserID,
		OrganizationID: tc.OrganizationID,
		Role:           role,
		JoinedAt:       s.Now(),
	}
	if err := s.orgRepo.SaveMembership(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add member",
			slog.String("organization_id", tc.OrganizationID),
			slog.String("target_user_id", targetUserID))
		return err
	}
	s.LogInfo(ctx, "Member added",
		slog.String("organization_id", tc.OrganizationID),
		slog.String("target_user_id", targetUserID),
		slog.String("role", string(role)))
	return nil
}

// AuthorizeUserAction checks that the user holds requiredRole or a higher one.
// Returns ErrNotAMember without a membership and ErrForbidden for a lower role.
func (s *tenancyService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.Role) error {
	tc, err := s.Resolve(ctx, userID, organizationID)
	if err != nil {
		return err
	}
	if !tc.Role.Satisfies(requiredRole) {
		s.GetLogger(ctx).Warn("Authorization failed: user lacks required role",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID),
			slog.String("user_role", string(tc.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.NewForbiddenError("requires role " + string(requiredRole))
	}
	return nil
}
