package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/internal/utils/accounting"
)

// reportingService assembles read-only reports over realized rows.
type reportingService struct {
	BaseService
	propertyRepo portsrepo.PropertyReader
	incomeRepo   portsrepo.IncomeReader
	expenseRepo  portsrepo.ExpenseReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	propertyRepo portsrepo.PropertyReader,
	incomeRepo portsrepo.IncomeReader,
	expenseRepo portsrepo.ExpenseReader,
	options ...ServiceOption,
) portssvc.ReportingSvc {
	return &reportingService{
		BaseService:  newBaseService(options),
		propertyRepo: propertyRepo,
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
	}
}

// Ensure reportingService implements the ReportingSvc interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// ProfitAndLoss generates a profit-and-loss report over the window
func (s *reportingService) ProfitAndLoss(ctx context.Context, tc domain.TenancyContext, window domain.DateWindow) (*domain.ProfitAndLoss, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	filter := domain.LedgerFilter{OrganizationID: tc.OrganizationID, Window: window}
	incomes, expenses, err := s.loadRows(ctx, filter, true, true)
	if err != nil {
		return nil, err
	}

	pnl := accounting.ProfitAndLoss(window, incomes, expenses)
	s.LogDebug(ctx, "Profit and loss generated",
		slog.String("organization_id", tc.OrganizationID),
		slog.Int("income_rows", len(incomes)),
		slog.Int("expense_rows", len(expenses)))
	return &pnl, nil
}

// Transactions generates the transaction listing for the filter
func (s *reportingService) Transactions(ctx context.Context, tc domain.TenancyContext, filter domain.TransactionReportFilter) (*domain.TransactionReport, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	if filter.Type == "" {
		filter.Type = domain.FilterAll
	}
	if !filter.Type.IsValid() {
		return nil, apperrors.NewValidationFailedError("invalid transaction type filter: " + string(filter.Type))
	}
	if err := filter.Window.Validate(); err != nil {
		return nil, err
	}

	properties, err := s.propertyRepo.ListPropertiesByOrganization(ctx, tc.OrganizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list properties for report", slog.String("organization_id", tc.OrganizationID))
		return nil, err
	}
	names := make(map[string]string, len(properties))
	for _, p := range properties {
		names[p.PropertyID] = p.Name
	}
	if filter.PropertyID != nil {
		if _, ok := names[*filter.PropertyID]; !ok {
			return nil, apperrors.NewNotFoundError("property " + *filter.PropertyID + " not found")
		}
	}

	ledgerFilter := domain.LedgerFilter{
		OrganizationID: tc.OrganizationID,
		PropertyID:     filter.PropertyID,
		Window:         filter.Window,
	}
	incomes, expenses, err := s.loadRows(ctx, ledgerFilter,
		filter.Type != domain.FilterExpense,
		filter.Type != domain.FilterIncome)
	if err != nil {
		return nil, err
	}

	report := accounting.TransactionReport(names, incomes, expenses)
	return &report, nil
}

// PropertyPerformance generates per-property totals and ROI against purchase price
func (s *reportingService) PropertyPerformance(ctx context.Context, tc domain.TenancyContext, window domain.DateWindow, propertyID *string) ([]domain.PropertyPerformance, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	var properties []domain.Property
	if propertyID != nil {
		property, err := s.propertyRepo.FindPropertyByID(ctx, tc.OrganizationID, *propertyID)
		if err != nil {
			return nil, err
		}
		properties = []domain.Property{*property}
	} else {
		var err error
		properties, err = s.propertyRepo.ListPropertiesByOrganization(ctx, tc.OrganizationID)
		if err != nil {
			s.LogError(ctx, err, "Failed to list properties for report", slog.String("organization_id", tc.OrganizationID))
			return nil, err
		}
	}

	filter := domain.LedgerFilter{OrganizationID: tc.OrganizationID, PropertyID: propertyID, Window: window}
	incomes, expenses, err := s.loadRows(ctx, filter, true, true)
	if err != nil {
		return nil, err
	}
	return accounting.PropertyPerformance(properties, incomes, expenses), nil
}

func (s *reportingService) loadRows(ctx context.Context, filter domain.LedgerFilter, withIncomes, withExpenses bool) ([]domain.Income, []domain.Expense, error) {
	var (
		incomes  []domain.Income
		expenses []domain.Expense
		err      error
	)
	if withIncomes {
		if incomes, err = s.incomeRepo.ListIncomes(ctx, filter); err != nil {
			s.LogError(ctx, err, "Failed to list incomes for report", slog.String("organization_id", filter.OrganizationID))
			return nil, nil, err
		}
	}
	if withExpenses {
		if expenses, err = s.expenseRepo.ListExpenses(ctx, filter); err != nil {
			s.LogError(ctx, err, "Failed to list expenses for report", slog.String("organization_id", filter.OrganizationID))
			return nil, nil, err
		}
	}
	return incomes, expenses, nil
}
