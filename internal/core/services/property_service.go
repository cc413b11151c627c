package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
)

// propertyService manages the properties of an organization.
type propertyService struct {
	BaseService
	propertyRepo portsrepo.PropertyRepositoryFacade
}

// NewPropertyService creates a new property service.
func NewPropertyService(propertyRepo portsrepo.PropertyRepositoryFacade, options ...ServiceOption) portssvc.PropertySvcFacade {
	return &propertyService{
		BaseService:  newBaseService(options),
		propertyRepo: propertyRepo,
	}
}

var _ portssvc.PropertySvcFacade = (*propertyService)(nil)

func (s *propertyService) CreateProperty(ctx context.Context, tc domain.TenancyContext, in domain.PropertyInput) (*domain.Property, error) {
	if err := s.Authorize(ctx, tc, domain.RoleAdmin); err != nil {
		return nil, err
	}
	property, err := domain.NewProperty(s.GenerateID(), tc, in, s.Now())
	if err != nil {
		return nil, err
	}
	if err := s.propertyRepo.SaveProperty(ctx, property); err != nil {
		s.LogError(ctx, err, "Failed to save property", slog.String("organization_id", tc.OrganizationID))
		return nil, err
	}
	s.LogInfo(ctx, "Property created", slog.String("property_id", property.PropertyID))
	return &property, nil
}

func (s *propertyService) GetProperty(ctx context.Context, tc domain.TenancyContext, propertyID string) (*domain.Property, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	property, err := s.propertyRepo.FindPropertyByID(ctx, tc.OrganizationID, propertyID)
	if err != nil {
		if logWorthy(err) {
			s.LogError(ctx, err, "Failed to find property", slog.String("property_id", propertyID))
		}
		return nil, err
	}
	return property, nil
}

func (s *propertyService) ListProperties(ctx context.Context, tc domain.TenancyContext) ([]domain.Property, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	properties, err := s.propertyRepo.ListPropertiesByOrganization(ctx, tc.OrganizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list properties", slog.String("organization_id", tc.OrganizationID))
		return nil, err
	}
	if properties == nil {
		return []domain.Property{}, nil
	}
	return properties, nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, tc domain.TenancyContext, propertyID string, in domain.PropertyInput) (*domain.Property, error) {
	if err := s.Authorize(ctx, tc, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	property, err := s.propertyRepo.FindPropertyByID(ctx, tc.OrganizationID, propertyID)
	if err != nil {
		return nil, err
	}
	property.Apply(in)
	property.Touch(tc.UserID, s.Now())
	if err := s.propertyRepo.UpdateProperty(ctx, *property); err != nil {
		s.LogError(ctx, err, "Failed to update property", slog.String("property_id", propertyID))
		return nil, err
	}
	return property, nil
}

func (s *propertyService) DeleteProperty(ctx context.Context, tc domain.TenancyContext, propertyID string) error {
	if err := s.Authorize(ctx, tc, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.propertyRepo.DeleteProperty(ctx, tc.OrganizationID, propertyID); err != nil {
		if logWorthy(err) {
			s.LogError(ctx, err, "Failed to delete property", slog.String("property_id", propertyID))
		}
		return err
	}
	s.LogInfo(ctx, "Property deleted", slog.String("property_id", propertyID))
	return nil
}
