package services

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// JobsSvc exposes the scheduled invocations. They run without a user and are
// safe to repeat any number of times a day.
type JobsSvc interface {
	ExpandPending(ctx context.Context, organizationID string, today time.Time) (domain.ExpansionResult, error)

	// ExpandAll expands every organization that owns an active template.
	ExpandAll(ctx context.Context, today time.Time) (domain.ExpansionResult, error)

	ProcessDueReminders(ctx context.Context, today time.Time) (domain.ReminderRunResult, error)
}
