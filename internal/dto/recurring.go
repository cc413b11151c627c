package dto

import (
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecurringRequest carries the fields for creating or replacing a recurring template.
// Exactly one of IncomeType and ExpenseType must be set, matching TransactionType.
type RecurringRequest struct {
	PropertyID      string                    `json:"propertyID" binding:"required"`
	TransactionType domain.TransactionType    `json:"transactionType" binding:"required,oneof=income expense"`
	IncomeType      *domain.IncomeType        `json:"incomeType,omitempty"`
	ExpenseType     *domain.ExpenseType       `json:"expenseType,omitempty"`
	Amount          decimal.Decimal           `json:"amount"`
	Description     string                    `json:"description"`
	Interval        domain.RecurrenceInterval `json:"interval" binding:"required"`
	StartDate       string                    `json:"startDate" binding:"required,date"`
	EndDate         *string                   `json:"endDate,omitempty" binding:"omitempty,date"`
}

func (r RecurringRequest) ToInput() (domain.RecurringInput, error) {
	start, err := parseDate("startDate", r.StartDate)
	if err != nil {
		return domain.RecurringInput{}, err
	}
	end, err := parseOptionalDate("endDate", r.EndDate)
	if err != nil {
		return domain.RecurringInput{}, err
	}
	return domain.RecurringInput{
		PropertyID:      r.PropertyID,
		TransactionType: r.TransactionType,
		IncomeType:      r.IncomeType,
		ExpenseType:     r.ExpenseType,
		Amount:          r.Amount,
		Description:     r.Description,
		Interval:        r.Interval,
		StartDate:       start,
		EndDate:         end,
	}, nil
}

// ListRecurringParams filters templates. By default only active ones are listed.
type ListRecurringParams struct {
	IncludeInactive bool `form:"include_inactive"`
}

type ListRecurringResponse struct {
	Recurring []domain.RecurringTransaction `json:"recurring"`
}
