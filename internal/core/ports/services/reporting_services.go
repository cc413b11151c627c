package services

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// SummarySvc aggregates realized rows into totals
type SummarySvc interface {
	Summarize(ctx context.Context, tc domain.TenancyContext, propertyID string, window domain.DateWindow) (*domain.FinancialSummary, error)
	SummarizeOrganization(ctx context.Context, tc domain.TenancyContext, window domain.DateWindow) (*domain.FinancialSummary, error)
}

// ReportingSvc defines read-only report queries. Pending transactions are never included.
type ReportingSvc interface {
	ProfitAndLoss(ctx context.Context, tc domain.TenancyContext, window domain.DateWindow) (*domain.ProfitAndLoss, error)
	Transactions(ctx context.Context, tc domain.TenancyContext, filter domain.TransactionReportFilter) (*domain.TransactionReport, error)
	PropertyPerformance(ctx context.Context, tc domain.TenancyContext, window domain.DateWindow, propertyID *string) ([]domain.PropertyPerformance, error)
}
