package memstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

func (s *Store) FindRentReminder(ctx context.Context, organizationID, propertyID string, month domain.MonthKey) (*domain.RentReminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reminders {
		if r.OrganizationID == organizationID && r.PropertyID == propertyID && r.Month() == month {
			return &r, nil
		}
	}
	return nil, apperrors.NewNotFoundError("rent reminder not found")
}

func (s *Store) ListRentRemindersByMonth(ctx context.Context, organizationID string, month domain.MonthKey) ([]domain.RentReminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.RentReminder
	for _, r := range s.reminders {
		if r.OrganizationID == organizationID && r.Month() == month {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b domain.RentReminder) int { return strings.Compare(a.PropertyID, b.PropertyID) })
	return out, nil
}

func (s *Store) ListDueRentReminders(ctx context.Context, today time.Time) ([]domain.RentReminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.injected("ListDueRentReminders"); err != nil {
		return nil, err
	}
	var out []domain.RentReminder
	for _, r := range s.reminders {
		if r.IsDue(today) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b domain.RentReminder) int {
		if c := a.NextReminderDate.Compare(b.NextReminderDate); c != 0 {
			return c
		}
		return strings.Compare(a.RentReminderID, b.RentReminderID)
	})
	return out, nil
}

// SaveRentReminder enforces the (property_id, reminder_year, reminder_month) unique index.
func (s *Store) SaveRentReminder(ctx context.Context, reminder domain.RentReminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(reminder.OrganizationID, reminder.CreatedBy); err != nil {
		return err
	}
	if err := s.requirePropertyLocked(reminder.OrganizationID, reminder.PropertyID); err != nil {
		return err
	}
	for _, r := range s.reminders {
		if r.RentReminderID == reminder.RentReminderID ||
			(r.PropertyID == reminder.PropertyID && r.Month() == reminder.Month()) {
			return apperrors.NewConflictError("rent reminder already exists for this month")
		}
	}
	s.reminders[reminder.RentReminderID] = reminder
	return nil
}

func (s *Store) UpdateAfterSend(ctx context.Context, reminderID string, today time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("UpdateAfterSend"); err != nil {
		return false, err
	}
	r, ok := s.reminders[reminderID]
	if !ok || !r.IsDue(today) {
		return false, nil
	}
	r.RecordSend(today)
	s.reminders[reminderID] = r
	return true, nil
}

func (s *Store) MarkRentRecorded(ctx context.Context, organizationID, reminderID, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := domain.RequireWriteStamp(organizationID, userID); err != nil {
		return err
	}
	r, ok := s.reminders[reminderID]
	if !ok || r.OrganizationID != organizationID {
		return apperrors.NewNotFoundError("rent reminder " + reminderID + " not found")
	}
	r.IsRentRecorded = true
	r.Touch(userID, now)
	s.reminders[reminderID] = r
	return nil
}
