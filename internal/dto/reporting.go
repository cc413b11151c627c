package dto

import "github.com/SscSPs/property_ledger_app/internal/core/domain"

// TransactionReportParams defines the query parameters of the transaction report.
type TransactionReportParams struct {
	WindowParams
	PropertyID *string                      `form:"property_id"`
	Type       domain.TransactionTypeFilter `form:"type,default=all" binding:"omitempty,oneof=all income expense"`
}

func (p TransactionReportParams) ToFilter() (domain.TransactionReportFilter, error) {
	window, err := p.ToWindow()
	if err != nil {
		return domain.TransactionReportFilter{}, err
	}
	return domain.TransactionReportFilter{
		Window:     window,
		PropertyID: p.PropertyID,
		Type:       p.Type,
	}, nil
}

// PropertyPerformanceParams defines the query parameters of the performance report.
type PropertyPerformanceParams struct {
	WindowParams
	PropertyID *string `form:"property_id"`
}

type PropertyPerformanceResponse struct {
	Properties []domain.PropertyPerformance `json:"properties"`
}
