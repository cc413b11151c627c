package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// RecurringReader defines read operations for recurring templates
type RecurringReader interface {
	FindRecurringByID(ctx context.Context, organizationID, recurringID string) (*domain.RecurringTransaction, error)
	ListRecurringByOrganization(ctx context.Context, organizationID string) ([]domain.RecurringTransaction, error)
	ListActiveRecurringByOrganization(ctx context.Context, organizationID string) ([]domain.RecurringTransaction, error)

	// ListOrganizationsWithActiveRecurring returns the ids of organizations owning at least one active template.
	ListOrganizationsWithActiveRecurring(ctx context.Context) ([]string, error)
}

// RecurringWriter defines write operations for recurring templates
type RecurringWriter interface {
	SaveRecurring(ctx context.Context, recurring domain.RecurringTransaction) error
	UpdateRecurring(ctx context.Context, recurring domain.RecurringTransaction) error
	SetRecurringActive(ctx context.Context, organizationID, recurringID string, active bool, userID string, now time.Time) error
	SetLastGeneratedOn(ctx context.Context, organizationID, recurringID string, on time.Time) error

	// DeleteRecurring removes the template. Pending transactions generated from it are kept.
	DeleteRecurring(ctx context.Context, organizationID, recurringID string) error
}

// RecurringRepositoryFacade combines all recurring-related repository interfaces
type RecurringRepositoryFacade interface {
	RecurringReader
	RecurringWriter
}
