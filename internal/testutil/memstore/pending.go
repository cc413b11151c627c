package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

func (s *Store) FindPendingByID(ctx context.Context, organizationID, pendingID string) (*domain.PendingTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pending[pendingID]
	if !ok || p.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("pending transaction " + pendingID + " not found")
	}
	return &p, nil
}

func (s *Store) ListPending(ctx context.Context, organizationID string, transactionType *domain.TransactionType) ([]domain.PendingTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.PendingTransaction
	for _, p := range s.pending {
		if p.OrganizationID != organizationID {
			continue
		}
		if transactionType != nil && p.TransactionType != *transactionType {
			continue
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b domain.PendingTransaction) int {
		if c := a.TransactionDate.Compare(b.TransactionDate); c != 0 {
			return c
		}
		return strings.Compare(a.PendingTransactionID, b.PendingTransactionID)
	})
	return out, nil
}

func (s *Store) ExistsPendingForMonth(ctx context.Context, organizationID, recurringID string, month domain.MonthKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.injected("ExistsPendingForMonth"); err != nil {
		return false, err
	}
	for _, p := range s.pending {
		if p.OrganizationID == organizationID && p.RecurringTransactionID == recurringID &&
			(p.MonthKey == month.String() || month.Contains(p.TransactionDate)) {
			return true, nil
		}
	}
	return false, nil
}

// SavePending enforces the (recurring_transaction_id, month_key) unique index.
func (s *Store) SavePending(ctx context.Context, pending domain.PendingTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("SavePending"); err != nil {
		return err
	}
	if err := domain.RequireWriteStamp(pending.OrganizationID, pending.CreatedBy); err != nil {
		return err
	}
	if err := s.requirePropertyLocked(pending.OrganizationID, pending.PropertyID); err != nil {
		return err
	}
	for _, p := range s.pending {
		if p.PendingTransactionID == pending.PendingTransactionID ||
			(p.RecurringTransactionID == pending.RecurringTransactionID && p.MonthKey == pending.MonthKey) {
			return apperrors.NewConflictError("pending transaction already exists for this month")
		}
	}
	s.pending[pending.PendingTransactionID] = pending
	return nil
}

func (s *Store) UpdatePending(ctx context.Context, pending domain.PendingTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(pending.OrganizationID, pending.LastUpdatedBy); err != nil {
		return err
	}
	existing, ok := s.pending[pending.PendingTransactionID]
	if !ok || existing.OrganizationID != pending.OrganizationID {
		return apperrors.NewNotFoundError("pending transaction " + pending.PendingTransactionID + " not found")
	}
	s.pending[pending.PendingTransactionID] = pending
	return nil
}

func (s *Store) DeletePending(ctx context.Context, organizationID, pendingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("DeletePending"); err != nil {
		return err
	}
	existing, ok := s.pending[pendingID]
	if !ok || existing.OrganizationID != organizationID {
		return apperrors.NewNotFoundError("pending transaction " + pendingID + " not found")
	}
	delete(s.pending, pendingID)
	return nil
}
