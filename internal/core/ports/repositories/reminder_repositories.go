package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// RentReminderReader defines read operations for rent reminders
type RentReminderReader interface {
	FindRentReminder(ctx context.Context, organizationID, propertyID string, month domain.MonthKey) (*domain.RentReminder, error)
	ListRentRemindersByMonth(ctx context.Context, organizationID string, month domain.MonthKey) ([]domain.RentReminder, error)

	// ListDueRentReminders returns reminders of every organization that are due on today.
	ListDueRentReminders(ctx context.Context, today time.Time) ([]domain.RentReminder, error)
}

// RentReminderWriter defines write operations for rent reminders. Reminders are never deleted.
type RentReminderWriter interface {
	// SaveRentReminder inserts a reminder; a second reminder for the same
	// property and month fails with a conflict.
	SaveRentReminder(ctx context.Context, reminder domain.RentReminder) error

	// UpdateAfterSend records a send on today. It only applies while the
	// reminder is still below its ceiling and unrecorded, and reports whether it did.
	UpdateAfterSend(ctx context.Context, reminderID string, today time.Time) (bool, error)

	MarkRentRecorded(ctx context.Context, organizationID, reminderID, userID string, now time.Time) error
}

// RentReminderRepositoryFacade combines all reminder-related repository interfaces
type RentReminderRepositoryFacade interface {
	RentReminderReader
	RentReminderWriter
}
