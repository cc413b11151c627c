package services

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// ConfirmResult is the realized row produced by confirming a pending transaction.
// Exactly one of Income and Expense is set.
type ConfirmResult struct {
	TransactionType domain.TransactionType `json:"transactionType"`
	Income          *domain.Income         `json:"income,omitempty"`
	Expense         *domain.Expense        `json:"expense,omitempty"`
	AlreadyRealized bool                   `json:"alreadyRealized"` // a matching row existed; only the pending was removed
}

// PendingSvcFacade defines the pending confirmation workflow
type PendingSvcFacade interface {
	ListPending(ctx context.Context, tc domain.TenancyContext, transactionType *domain.TransactionType) ([]domain.PendingTransaction, error)
	GetPending(ctx context.Context, tc domain.TenancyContext, pendingID string) (*domain.PendingTransaction, error)
	EditPending(ctx context.Context, tc domain.TenancyContext, pendingID string, patch domain.PendingPatch) (*domain.PendingTransaction, error)
	DiscardPending(ctx context.Context, tc domain.TenancyContext, pendingID string) error

	// ConfirmPending realizes the pending as an income or expense and deletes it.
	// Repeating a confirm whose delete failed converges without a second realized row.
	ConfirmPending(ctx context.Context, tc domain.TenancyContext, pendingID string) (*ConfirmResult, error)
}
