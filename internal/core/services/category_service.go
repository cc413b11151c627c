package services

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryReader
}

// NewCategoryService creates a service over the shared category vocabulary.
func NewCategoryService(categoryRepo portsrepo.CategoryReader, options ...ServiceOption) portssvc.CategorySvc {
	return &categoryService{
		BaseService:  newBaseService(options),
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.CategorySvc = (*categoryService)(nil)

func (s *categoryService) ListCategories(ctx context.Context, categoryType *domain.TransactionType) ([]domain.Category, error) {
	if categoryType != nil && !categoryType.IsValid() {
		return nil, apperrors.NewValidationFailedError("invalid category type: " + string(*categoryType))
	}
	categories, err := s.categoryRepo.ListCategories(ctx, categoryType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID)
}
