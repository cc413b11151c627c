package services

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// RentReminderSvc defines the interactive rent reminder operations
type RentReminderSvc interface {
	// CreateMonthlyReminders bootstraps today's month for every property; returns how many were created.
	CreateMonthlyReminders(ctx context.Context, tc domain.TenancyContext, today time.Time) (int, error)

	ListReminders(ctx context.Context, tc domain.TenancyContext, month domain.MonthKey) ([]domain.RentReminder, error)

	// MarkRentRecorded closes the month for a property, creating its reminder when missing. Idempotent.
	MarkRentRecorded(ctx context.Context, tc domain.TenancyContext, propertyID string, month domain.MonthKey) (*domain.RentReminder, error)

	// IsRentRecorded is true when the flag is set or a rent income exists in the month.
	IsRentRecorded(ctx context.Context, tc domain.TenancyContext, propertyID string, month domain.MonthKey) (bool, error)
}

// RentReminderProcessorSvc sends due reminders across all organizations
type RentReminderProcessorSvc interface {
	ProcessDueReminders(ctx context.Context, today time.Time) (domain.ReminderRunResult, error)
}

// RentReminderSvcFacade combines all reminder-related service interfaces
type RentReminderSvcFacade interface {
	RentReminderSvc
	RentReminderProcessorSvc
}

// RentReminderNotifier delivers a reminder to the owner. A failed delivery
// leaves the reminder due.
type RentReminderNotifier interface {
	NotifyRentReminder(ctx context.Context, property domain.Property, reminder domain.RentReminder) error
}
