package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

func (s *Store) FindBudgetByID(ctx context.Context, organizationID, budgetID string) (*domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.budgets[budgetID]
	if !ok || b.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("budget " + budgetID + " not found")
	}
	return &b, nil
}

func (s *Store) listBudgets(keep func(domain.Budget) bool) []domain.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Budget
	for _, b := range s.budgets {
		if keep(b) {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b domain.Budget) int {
		if c := b.StartDate.Compare(a.StartDate); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

func (s *Store) ListBudgetsByOrganization(ctx context.Context, organizationID string) ([]domain.Budget, error) {
	return s.listBudgets(func(b domain.Budget) bool { return b.OrganizationID == organizationID }), nil
}

func (s *Store) ListBudgetsByProperty(ctx context.Context, organizationID, propertyID string) ([]domain.Budget, error) {
	return s.listBudgets(func(b domain.Budget) bool {
		return b.OrganizationID == organizationID && b.PropertyID != nil && *b.PropertyID == propertyID
	}), nil
}

func (s *Store) SaveBudget(ctx context.Context, budget domain.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(budget.OrganizationID, budget.CreatedBy); err != nil {
		return err
	}
	if budget.PropertyID != nil {
		if err := s.requirePropertyLocked(budget.OrganizationID, *budget.PropertyID); err != nil {
			return err
		}
	}
	if _, ok := s.budgets[budget.BudgetID]; ok {
		return apperrors.NewConflictError("budget already exists")
	}
	s.budgets[budget.BudgetID] = budget
	return nil
}

func (s *Store) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(budget.OrganizationID, budget.LastUpdatedBy); err != nil {
		return err
	}
	existing, ok := s.budgets[budget.BudgetID]
	if !ok || existing.OrganizationID != budget.OrganizationID {
		return apperrors.NewNotFoundError("budget " + budget.BudgetID + " not found")
	}
	s.budgets[budget.BudgetID] = budget
	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, organizationID, budgetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.budgets[budgetID]
	if !ok || existing.OrganizationID != organizationID {
		return apperrors.NewNotFoundError("budget " + budgetID + " not found")
	}
	s.deleteBudgetLocked(budgetID)
	return nil
}

func (s *Store) deleteBudgetLocked(budgetID string) {
	delete(s.budgets, budgetID)
	for id, l := range s.budgetLines {
		if l.BudgetID == budgetID {
			delete(s.budgetLines, id)
		}
	}
}

func (s *Store) SaveBudgetLine(ctx context.Context, line domain.BudgetLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(line.OrganizationID, line.CreatedBy); err != nil {
		return err
	}
	b, ok := s.budgets[line.BudgetID]
	if !ok || b.OrganizationID != line.OrganizationID {
		return apperrors.NewValidationFailedError("budget does not belong to organization")
	}
	for _, l := range s.budgetLines {
		if l.BudgetID == line.BudgetID && l.CategoryID == line.CategoryID {
			return apperrors.NewConflictError("budget already has a line for this category")
		}
	}
	s.budgetLines[line.BudgetLineID] = line
	return nil
}

func (s *Store) FindBudgetLineByID(ctx context.Context, organizationID, budgetID, lineID string) (*domain.BudgetLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.budgetLines[lineID]
	if !ok || l.OrganizationID != organizationID || l.BudgetID != budgetID {
		return nil, apperrors.NewNotFoundError("budget line " + lineID + " not found")
	}
	return &l, nil
}

func (s *Store) ListBudgetLines(ctx context.Context, organizationID, budgetID string) ([]domain.BudgetLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.BudgetLine
	for _, l := range s.budgetLines {
		if l.OrganizationID == organizationID && l.BudgetID == budgetID {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b domain.BudgetLine) int { return strings.Compare(a.CategoryID, b.CategoryID) })
	return out, nil
}

func (s *Store) UpdateBudgetLine(ctx context.Context, line domain.BudgetLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(line.OrganizationID, line.LastUpdatedBy); err != nil {
		return err
	}
	existing, ok := s.budgetLines[line.BudgetLineID]
	if !ok || existing.OrganizationID != line.OrganizationID || existing.BudgetID != line.BudgetID {
		return apperrors.NewNotFoundError("budget line " + line.BudgetLineID + " not found")
	}
	for id, l := range s.budgetLines {
		if id != line.BudgetLineID && l.BudgetID == line.BudgetID && l.CategoryID == line.CategoryID {
			return apperrors.NewConflictError("budget already has a line for this category")
		}
	}
	s.budgetLines[line.BudgetLineID] = line
	return nil
}

func (s *Store) DeleteBudgetLine(ctx context.Context, organizationID, budgetID, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.budgetLines[lineID]
	if !ok || existing.OrganizationID != organizationID || existing.BudgetID != budgetID {
		return apperrors.NewNotFoundError("budget line " + lineID + " not found")
	}
	delete(s.budgetLines, lineID)
	return nil
}
