package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

func (s *Store) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	org, ok := s.organizations[organizationID]
	if !ok {
		return nil, apperrors.NewNotFoundError("organization " + organizationID + " not found")
	}
	return &org, nil
}

func (s *Store) ListMembershipsByUserID(ctx context.Context, userID string) ([]domain.OrganizationMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.injected("ListMembershipsByUserID"); err != nil {
		return nil, err
	}
	var out []domain.OrganizationMembership
	for key, m := range s.memberships {
		if key.userID != userID {
			continue
		}
		out = append(out, domain.OrganizationMembership{
			Organization: s.organizations[key.organizationID],
			Role:         m.Role,
			JoinedAt:     m.JoinedAt,
		})
	}
	slices.SortFunc(out, func(a, b domain.OrganizationMembership) int {
		return strings.Compare(a.Organization.Name, b.Organization.Name)
	})
	return out, nil
}

func (s *Store) FindMembership(ctx context.Context, userID, organizationID string) (*domain.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.injected("FindMembership"); err != nil {
		return nil, err
	}
	m, ok := s.memberships[membershipKey{userID, organizationID}]
	if !ok {
		return nil, apperrors.NewNotFoundError("membership not found")
	}
	return &m, nil
}

func (s *Store) SaveOrganization(ctx context.Context, organization domain.Organization, owner domain.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(organization.OrganizationID, organization.CreatedBy); err != nil {
		return err
	}
	if _, ok := s.organizations[organization.OrganizationID]; ok {
		return apperrors.NewConflictError("organization already exists")
	}
	s.organizations[organization.OrganizationID] = organization
	s.memberships[membershipKey{owner.UserID, owner.OrganizationID}] = owner
	return nil
}

func (s *Store) SaveMembership(ctx context.Context, membership domain.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(membership.OrganizationID, membership.UserID); err != nil {
		return err
	}
	if _, ok := s.organizations[membership.OrganizationID]; !ok {
		return apperrors.NewValidationFailedError("organization does not exist")
	}
	s.memberships[membershipKey{membership.UserID, membership.OrganizationID}] = membership
	return nil
}

func (s *Store) FindPropertyByID(ctx context.Context, organizationID, propertyID string) (*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.injected("FindPropertyByID"); err != nil {
		return nil, err
	}
	p, ok := s.properties[propertyID]
	if !ok || p.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("property " + propertyID + " not found")
	}
	return &p, nil
}

func (s *Store) ListPropertiesByOrganization(ctx context.Context, organizationID string) ([]domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.injected("ListPropertiesByOrganization"); err != nil {
		return nil, err
	}
	var out []domain.Property
	for _, p := range s.properties {
		if p.OrganizationID == organizationID {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b domain.Property) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (s *Store) SaveProperty(ctx context.Context, property domain.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(property.OrganizationID, property.CreatedBy); err != nil {
		return err
	}
	if _, ok := s.properties[property.PropertyID]; ok {
		return apperrors.NewConflictError("property already exists")
	}
	s.properties[property.PropertyID] = property
	return nil
}

func (s *Store) UpdateProperty(ctx context.Context, property domain.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(property.OrganizationID, property.LastUpdatedBy); err != nil {
		return err
	}
	existing, ok := s.properties[property.PropertyID]
	if !ok || existing.OrganizationID != property.OrganizationID {
		return apperrors.NewNotFoundError("property " + property.PropertyID + " not found")
	}
	property.AuditFields.CreatedAt = existing.CreatedAt
	property.AuditFields.CreatedBy = existing.CreatedBy
	s.properties[property.PropertyID] = property
	return nil
}

// DeleteProperty cascades to the property's rows like the schema does.
func (s *Store) DeleteProperty(ctx context.Context, organizationID, propertyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[propertyID]
	if !ok || p.OrganizationID != organizationID {
		return apperrors.NewNotFoundError("property " + propertyID + " not found")
	}
	delete(s.properties, propertyID)
	for id, i := range s.incomes {
		if i.PropertyID == propertyID {
			delete(s.incomes, id)
		}
	}
	for id, e := range s.expenses {
		if e.PropertyID == propertyID {
			delete(s.expenses, id)
		}
	}
	for id, r := range s.recurring {
		if r.PropertyID == propertyID {
			delete(s.recurring, id)
		}
	}
	for id, p := range s.pending {
		if p.PropertyID == propertyID {
			delete(s.pending, id)
		}
	}
	for id, r := range s.reminders {
		if r.PropertyID == propertyID {
			delete(s.reminders, id)
		}
	}
	for id, b := range s.budgets {
		if b.PropertyID != nil && *b.PropertyID == propertyID {
			s.deleteBudgetLocked(id)
		}
	}
	return nil
}

func (s *Store) ListCategories(ctx context.Context, categoryType *domain.TransactionType) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Category
	for _, c := range s.categories {
		if categoryType == nil || c.Type == *categoryType {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b domain.Category) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(string(a.Type), string(b.Type))
	})
	return out, nil
}

func (s *Store) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[categoryID]
	if !ok {
		return nil, apperrors.NewNotFoundError("category " + categoryID + " not found")
	}
	return &c, nil
}
