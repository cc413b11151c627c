package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// CategoryReader defines read operations for the shared category vocabulary
type CategoryReader interface {
	// ListCategories lists categories ordered by name, optionally of one type.
	ListCategories(ctx context.Context, categoryType *domain.TransactionType) ([]domain.Category, error)

	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
}
