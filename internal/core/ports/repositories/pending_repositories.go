package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// PendingReader defines read operations for pending transactions
type PendingReader interface {
	FindPendingByID(ctx context.Context, organizationID, pendingID string) (*domain.PendingTransaction, error)

	// ListPending lists an organization's pendings ordered by transaction date, optionally of one type.
	ListPending(ctx context.Context, organizationID string, transactionType *domain.TransactionType) ([]domain.PendingTransaction, error)

	// ExistsPendingForMonth reports whether the template already has a pending
	// generated for month or dated within it.
	ExistsPendingForMonth(ctx context.Context, organizationID, recurringID string, month domain.MonthKey) (bool, error)
}

// PendingWriter defines write operations for pending transactions
type PendingWriter interface {
	SavePending(ctx context.Context, pending domain.PendingTransaction) error
	UpdatePending(ctx context.Context, pending domain.PendingTransaction) error
	DeletePending(ctx context.Context, organizationID, pendingID string) error
}

// PendingRepositoryFacade combines all pending-related repository interfaces
type PendingRepositoryFacade interface {
	PendingReader
	PendingWriter
}
