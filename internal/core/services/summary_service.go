package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/internal/utils/accounting"
)

// summaryService aggregates realized incomes and expenses.
type summaryService struct {
	BaseService
	propertyRepo portsrepo.PropertyReader
	incomeRepo   portsrepo.IncomeReader
	expenseRepo  portsrepo.ExpenseReader
}

// NewSummaryService creates a new financial summary service.
func NewSummaryService(
	propertyRepo portsrepo.PropertyReader,
	incomeRepo portsrepo.IncomeReader,
	expenseRepo portsrepo.ExpenseReader,
	options ...ServiceOption,
) portssvc.SummarySvc {
	return &summaryService{
		BaseService:  newBaseService(options),
		propertyRepo: propertyRepo,
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
	}
}

var _ portssvc.SummarySvc = (*summaryService)(nil)

func (s *summaryService) Summarize(ctx context.Context, tc domain.TenancyContext, propertyID string, window domain.DateWindow) (*domain.FinancialSummary, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.propertyRepo.FindPropertyByID(ctx, tc.OrganizationID, propertyID); err != nil {
		return nil, err
	}
	return s.summarize(ctx, domain.LedgerFilter{
		OrganizationID: tc.OrganizationID,
		PropertyID:     &propertyID,
		Window:         window,
	})
}

func (s *summaryService) SummarizeOrganization(ctx context.Context, tc domain.TenancyContext, window domain.DateWindow) (*domain.FinancialSummary, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}
	return s.summarize(ctx, domain.LedgerFilter{OrganizationID: tc.OrganizationID, Window: window})
}

func (s *summaryService) summarize(ctx context.Context, filter domain.LedgerFilter) (*domain.FinancialSummary, error) {
	incomes, err := s.incomeRepo.ListIncomes(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list incomes for summary", slog.String("organization_id", filter.OrganizationID))
		return nil, err
	}
	expenses, err := s.expenseRepo.ListExpenses(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses for summary", slog.String("organization_id", filter.OrganizationID))
		return nil, err
	}
	summary := accounting.Summarize(incomes, expenses)
	return &summary, nil
}
