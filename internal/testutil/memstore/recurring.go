package memstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

func (s *Store) FindRecurringByID(ctx context.Context, organizationID, recurringID string) (*domain.RecurringTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recurring[recurringID]
	if !ok || r.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("recurring transaction " + recurringID + " not found")
	}
	return &r, nil
}

func (s *Store) listRecurring(keep func(domain.RecurringTransaction) bool) []domain.RecurringTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.RecurringTransaction
	for _, r := range s.recurring {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b domain.RecurringTransaction) int {
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c
		}
		return strings.Compare(a.RecurringTransactionID, b.RecurringTransactionID)
	})
	return out
}

func (s *Store) ListRecurringByOrganization(ctx context.Context, organizationID string) ([]domain.RecurringTransaction, error) {
	return s.listRecurring(func(r domain.RecurringTransaction) bool { return r.OrganizationID == organizationID }), nil
}

func (s *Store) ListActiveRecurringByOrganization(ctx context.Context, organizationID string) ([]domain.RecurringTransaction, error) {
	if err := s.injected("ListActiveRecurringByOrganization"); err != nil {
		return nil, err
	}
	return s.listRecurring(func(r domain.RecurringTransaction) bool {
		return r.OrganizationID == organizationID && r.IsActive
	}), nil
}

func (s *Store) ListOrganizationsWithActiveRecurring(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, r := range s.recurring {
		if r.IsActive && !seen[r.OrganizationID] {
			seen[r.OrganizationID] = true
			out = append(out, r.OrganizationID)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (s *Store) SaveRecurring(ctx context.Context, recurring domain.RecurringTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(recurring.OrganizationID, recurring.CreatedBy); err != nil {
		return err
	}
	if err := s.requirePropertyLocked(recurring.OrganizationID, recurring.PropertyID); err != nil {
		return err
	}
	if _, ok := s.recurring[recurring.RecurringTransactionID]; ok {
		return apperrors.NewConflictError("recurring transaction already exists")
	}
	s.recurring[recurring.RecurringTransactionID] = recurring
	return nil
}

func (s *Store) UpdateRecurring(ctx context.Context, recurring domain.RecurringTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(recurring.OrganizationID, recurring.LastUpdatedBy); err != nil {
		return err
	}
	existing, ok := s.recurring[recurring.RecurringTransactionID]
	if !ok || existing.OrganizationID != recurring.OrganizationID {
		return apperrors.NewNotFoundError("recurring transaction " + recurring.RecurringTransactionID + " not found")
	}
	recurring.LastGeneratedOn = existing.LastGeneratedOn
	s.recurring[recurring.RecurringTransactionID] = recurring
	return nil
}

func (s *Store) SetRecurringActive(ctx context.Context, organizationID, recurringID string, active bool, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(organizationID, userID); err != nil {
		return err
	}
	r, ok := s.recurring[recurringID]
	if !ok || r.OrganizationID != organizationID {
		return apperrors.NewNotFoundError("recurring transaction " + recurringID + " not found")
	}
	r.IsActive = active
	r.Touch(userID, now)
	s.recurring[recurringID] = r
	return nil
}

func (s *Store) SetLastGeneratedOn(ctx context.Context, organizationID, recurringID string, on time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("SetLastGeneratedOn"); err != nil {
		return err
	}
	r, ok := s.recurring[recurringID]
	if !ok || r.OrganizationID != organizationID {
		return apperrors.NewNotFoundError("recurring transaction " + recurringID + " not found")
	}
	on = domain.DateOf(on)
	r.LastGeneratedOn = &on
	s.recurring[recurringID] = r
	return nil
}

func (s *Store) DeleteRecurring(ctx context.Context, organizationID, recurringID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recurring[recurringID]
	if !ok || r.OrganizationID != organizationID {
		return apperrors.NewNotFoundError("recurring transaction " + recurringID + " not found")
	}
	delete(s.recurring, recurringID)
	return nil
}
