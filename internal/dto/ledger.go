package dto

import (
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IncomeRequest carries the fields for recording or replacing an income.
type IncomeRequest struct {
	PropertyID      string            `json:"propertyID" binding:"required"`
	Amount          decimal.Decimal   `json:"amount"`
	IncomeType      domain.IncomeType `json:"incomeType" binding:"required,oneof=rent deposit late_fee other"`
	Description     string            `json:"description"`
	TransactionDate string            `json:"transactionDate" binding:"required,date"`
}

func (r IncomeRequest) ToInput() (domain.IncomeInput, error) {
	date, err := parseDate("transactionDate", r.TransactionDate)
	if err != nil {
		return domain.IncomeInput{}, err
	}
	return domain.IncomeInput{
		PropertyID:      r.PropertyID,
		Amount:          r.Amount,
		IncomeType:      r.IncomeType,
		Description:     r.Description,
		TransactionDate: date,
	}, nil
}

// ExpenseRequest carries the fields for recording or replacing an expense.
type ExpenseRequest struct {
	PropertyID      string             `json:"propertyID" binding:"required"`
	Amount          decimal.Decimal    `json:"amount"`
	ExpenseType     domain.ExpenseType `json:"expenseType" binding:"required"`
	Description     string             `json:"description"`
	TransactionDate string             `json:"transactionDate" binding:"required,date"`
	ReceiptURL      *string            `json:"receiptURL,omitempty" binding:"omitempty,url"`
}

func (r ExpenseRequest) ToInput() (domain.ExpenseInput, error) {
	date, err := parseDate("transactionDate", r.TransactionDate)
	if err != nil {
		return domain.ExpenseInput{}, err
	}
	return domain.ExpenseInput{
		PropertyID:      r.PropertyID,
		Amount:          r.Amount,
		ExpenseType:     r.ExpenseType,
		Description:     r.Description,
		TransactionDate: date,
		ReceiptURL:      r.ReceiptURL,
	}, nil
}

// ListLedgerParams defines the query parameters for listing incomes or expenses.
type ListLedgerParams struct {
	PropertyID *string `form:"property_id"`
	Limit      int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  *string `form:"next_token"`
}

// ListCategoriesParams filters the category vocabulary.
type ListCategoriesParams struct {
	Type *domain.TransactionType `form:"type" binding:"omitempty,oneof=income expense"`
}

// ListCategoriesResponse wraps the category vocabulary.
type ListCategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}
