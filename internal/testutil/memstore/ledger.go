package memstore

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

func matchesLedger(filter domain.LedgerFilter, organizationID, propertyID string, date time.Time) bool {
	if organizationID != filter.OrganizationID {
		return false
	}
	if filter.PropertyID != nil && propertyID != *filter.PropertyID {
		return false
	}
	return filter.Window.Contains(date)
}

func sameDay(a, b time.Time) bool {
	return domain.DateOf(a).Equal(domain.DateOf(b))
}

func page[T any](rows []T, limit int, nextToken *string) ([]T, *string, error) {
	offset := 0
	if nextToken != nil && *nextToken != "" {
		n, err := strconv.Atoi(*nextToken)
		if err != nil || n < 0 {
			return nil, nil, apperrors.NewValidationFailedError("invalid next token")
		}
		offset = n
	}
	if offset >= len(rows) {
		return []T{}, nil, nil
	}
	end := offset + limit
	if end >= len(rows) {
		return rows[offset:], nil, nil
	}
	token := strconv.Itoa(end)
	return rows[offset:end], &token, nil
}

func (s *Store) FindIncomeByID(ctx context.Context, organizationID, incomeID string) (*domain.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.incomes[incomeID]
	if !ok || i.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("income " + incomeID + " not found")
	}
	return &i, nil
}

func (s *Store) ListIncomes(ctx context.Context, filter domain.LedgerFilter) ([]domain.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.injected("ListIncomes"); err != nil {
		return nil, err
	}
	var out []domain.Income
	for _, i := range s.incomes {
		if matchesLedger(filter, i.OrganizationID, i.PropertyID, i.TransactionDate) {
			out = append(out, i)
		}
	}
	slices.SortFunc(out, func(a, b domain.Income) int {
		if c := a.TransactionDate.Compare(b.TransactionDate); c != 0 {
			return c
		}
		return strings.Compare(a.IncomeID, b.IncomeID)
	})
	return out, nil
}

func (s *Store) ListIncomesPage(ctx context.Context, organizationID string, propertyID *string, limit int, nextToken *string) ([]domain.Income, *string, error) {
	rows, err := s.ListIncomes(ctx, domain.LedgerFilter{OrganizationID: organizationID, PropertyID: propertyID})
	if err != nil {
		return nil, nil, err
	}
	slices.Reverse(rows)
	return page(rows, limit, nextToken)
}

func (s *Store) ExistsMatchingIncome(ctx context.Context, key domain.MatchKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.injected("ExistsMatchingIncome"); err != nil {
		return false, err
	}
	for _, i := range s.incomes {
		if i.OrganizationID == key.OrganizationID && i.PropertyID == key.PropertyID &&
			i.Amount.Equal(key.Amount) && sameDay(i.TransactionDate, key.Date) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ExistsRentIncomeInMonth(ctx context.Context, organizationID, propertyID string, month domain.MonthKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.injected("ExistsRentIncomeInMonth"); err != nil {
		return false, err
	}
	for _, i := range s.incomes {
		if i.OrganizationID == organizationID && i.PropertyID == propertyID &&
			i.IncomeType == domain.IncomeRent && month.Contains(i.TransactionDate) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) SaveIncome(ctx context.Context, income domain.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("SaveIncome"); err != nil {
		return err
	}
	if err := domain.RequireWriteStamp(income.OrganizationID, income.CreatedBy); err != nil {
		return err
	}
	if err := s.requirePropertyLocked(income.OrganizationID, income.PropertyID); err != nil {
		return err
	}
	if _, ok := s.incomes[income.IncomeID]; ok {
		return apperrors.NewConflictError("income already exists")
	}
	s.incomes[income.IncomeID] = income
	return nil
}

func (s *Store) UpdateIncome(ctx context.Context, income domain.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(income.OrganizationID, income.LastUpdatedBy); err != nil {
		return err
	}
	existing, ok := s.incomes[income.IncomeID]
	if !ok || existing.OrganizationID != income.OrganizationID {
		return apperrors.NewNotFoundError("income " + income.IncomeID + " not found")
	}
	s.incomes[income.IncomeID] = income
	return nil
}

func (s *Store) DeleteIncome(ctx context.Context, organizationID, incomeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.incomes[incomeID]
	if !ok || existing.OrganizationID != organizationID {
		return apperrors.NewNotFoundError("income " + incomeID + " not found")
	}
	delete(s.incomes, incomeID)
	return nil
}

func (s *Store) FindExpenseByID(ctx context.Context, organizationID, expenseID string) (*domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.expenses[expenseID]
	if !ok || e.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("expense " + expenseID + " not found")
	}
	return &e, nil
}

func (s *Store) ListExpenses(ctx context.Context, filter domain.LedgerFilter) ([]domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.injected("ListExpenses"); err != nil {
		return nil, err
	}
	var out []domain.Expense
	for _, e := range s.expenses {
		if matchesLedger(filter, e.OrganizationID, e.PropertyID, e.TransactionDate) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b domain.Expense) int {
		if c := a.TransactionDate.Compare(b.TransactionDate); c != 0 {
			return c
		}
		return strings.Compare(a.ExpenseID, b.ExpenseID)
	})
	return out, nil
}

func (s *Store) ListExpensesPage(ctx context.Context, organizationID string, propertyID *string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	rows, err := s.ListExpenses(ctx, domain.LedgerFilter{OrganizationID: organizationID, PropertyID: propertyID})
	if err != nil {
		return nil, nil, err
	}
	slices.Reverse(rows)
	return page(rows, limit, nextToken)
}

func (s *Store) ExistsMatchingExpense(ctx context.Context, key domain.MatchKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.injected("ExistsMatchingExpense"); err != nil {
		return false, err
	}
	for _, e := range s.expenses {
		if e.OrganizationID == key.OrganizationID && e.PropertyID == key.PropertyID &&
			e.Amount.Equal(key.Amount) && sameDay(e.TransactionDate, key.Date) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) SaveExpense(ctx context.Context, expense domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("SaveExpense"); err != nil {
		return err
	}
	if err := domain.RequireWriteStamp(expense.OrganizationID, expense.CreatedBy); err != nil {
		return err
	}
	if err := s.requirePropertyLocked(expense.OrganizationID, expense.PropertyID); err != nil {
		return err
	}
	if _, ok := s.expenses[expense.ExpenseID]; ok {
		return apperrors.NewConflictError("expense already exists")
	}
	s.expenses[expense.ExpenseID] = expense
	return nil
}

func (s *Store) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(expense.OrganizationID, expense.LastUpdatedBy); err != nil {
		return err
	}
	existing, ok := s.expenses[expense.ExpenseID]
	if !ok || existing.OrganizationID != expense.OrganizationID {
		return apperrors.NewNotFoundError("expense " + expense.ExpenseID + " not found")
	}
	s.expenses[expense.ExpenseID] = expense
	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, organizationID, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.expenses[expenseID]
	if !ok || existing.OrganizationID != organizationID {
		return apperrors.NewNotFoundError("expense " + expenseID + " not found")
	}
	delete(s.expenses, expenseID)
	return nil
}

// requirePropertyLocked mirrors the (organization_id, property_id) foreign key.
func (s *Store) requirePropertyLocked(organizationID, propertyID string) error {
	p, ok := s.properties[propertyID]
	if !ok || p.OrganizationID != organizationID {
		return apperrors.NewValidationFailedError("property does not belong to organization")
	}
	return nil
}
