package services

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// RecurringReaderSvc defines read operations for recurring templates
type RecurringReaderSvc interface {
	GetRecurring(ctx context.Context, tc domain.TenancyContext, recurringID string) (*domain.RecurringTransaction, error)
	ListRecurring(ctx context.Context, tc domain.TenancyContext, activeOnly bool) ([]domain.RecurringTransaction, error)
}

// RecurringWriterSvc defines write operations for recurring templates
type RecurringWriterSvc interface {
	CreateRecurring(ctx context.Context, tc domain.TenancyContext, in domain.RecurringInput) (*domain.RecurringTransaction, error)
	UpdateRecurring(ctx context.Context, tc domain.TenancyContext, recurringID string, in domain.RecurringInput) (*domain.RecurringTransaction, error)
	DeactivateRecurring(ctx context.Context, tc domain.TenancyContext, recurringID string) error

	// ReactivateRecurring resumes generation from the current period; missed periods are not backfilled.
	ReactivateRecurring(ctx context.Context, tc domain.TenancyContext, recurringID string) error

	DeleteRecurring(ctx context.Context, tc domain.TenancyContext, recurringID string) error
}

// RecurringExpanderSvc materializes pending transactions from active templates
type RecurringExpanderSvc interface {
	// ExpandPending runs one expansion pass over the context's organization.
	ExpandPending(ctx context.Context, tc domain.TenancyContext, today time.Time) (domain.ExpansionResult, error)
}

// RecurringSvcFacade combines all recurring-related service interfaces
type RecurringSvcFacade interface {
	RecurringReaderSvc
	RecurringWriterSvc
	RecurringExpanderSvc
}
