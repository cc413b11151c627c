package dto

import (
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetRequest carries the fields for creating or replacing a budget.
// EndDate may be omitted for monthly and yearly budgets.
type BudgetRequest struct {
	PropertyID   *string             `json:"propertyID,omitempty"`
	Name         string              `json:"name" binding:"required,max=200"`
	Description  *string             `json:"description,omitempty"`
	BudgetAmount decimal.Decimal     `json:"budgetAmount"`
	Period       domain.BudgetPeriod `json:"period" binding:"required,oneof=monthly yearly custom"`
	Scope        domain.BudgetScope  `json:"scope" binding:"required,oneof=organization property"`
	StartDate    string              `json:"startDate" binding:"required,date"`
	EndDate      *string             `json:"endDate,omitempty" binding:"omitempty,date"`
}

func (r BudgetRequest) ToInput() (domain.BudgetInput, error) {
	start, err := parseDate("startDate", r.StartDate)
	if err != nil {
		return domain.BudgetInput{}, err
	}
	end, err := parseOptionalDate("endDate", r.EndDate)
	if err != nil {
		return domain.BudgetInput{}, err
	}
	return domain.BudgetInput{
		PropertyID:   r.PropertyID,
		Name:         r.Name,
		Description:  r.Description,
		BudgetAmount: r.BudgetAmount,
		Period:       r.Period,
		Scope:        r.Scope,
		StartDate:    start,
		EndDate:      end,
	}, nil
}

// ListBudgetsParams filters budgets by property.
type ListBudgetsParams struct {
	PropertyID *string `form:"property_id"`
}

type ListBudgetsResponse struct {
	Budgets []domain.Budget `json:"budgets"`
}

// BudgetLineRequest carries the fields for creating or replacing a budget line.
type BudgetLineRequest struct {
	CategoryID     string          `json:"categoryID" binding:"required"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
	Notes          *string         `json:"notes,omitempty"`
}

func (r BudgetLineRequest) ToInput() domain.BudgetLineInput {
	return domain.BudgetLineInput{
		CategoryID:     r.CategoryID,
		BudgetedAmount: r.BudgetedAmount,
		Notes:          r.Notes,
	}
}

type ListBudgetLinesResponse struct {
	Lines []domain.BudgetLine `json:"lines"`
}
