package dto

import (
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PatchPendingRequest lists the editable fields of a pending transaction.
// Omitted fields are left unchanged.
type PatchPendingRequest struct {
	Amount          *decimal.Decimal    `json:"amount,omitempty"`
	Description     *string             `json:"description,omitempty"`
	TransactionDate *string             `json:"transactionDate,omitempty" binding:"omitempty,date"`
	IncomeType      *domain.IncomeType  `json:"incomeType,omitempty"`
	ExpenseType     *domain.ExpenseType `json:"expenseType,omitempty"`
}

func (r PatchPendingRequest) ToPatch() (domain.PendingPatch, error) {
	date, err := parseOptionalDate("transactionDate", r.TransactionDate)
	if err != nil {
		return domain.PendingPatch{}, err
	}
	return domain.PendingPatch{
		Amount:          r.Amount,
		Description:     r.Description,
		TransactionDate: date,
		IncomeType:      r.IncomeType,
		ExpenseType:     r.ExpenseType,
	}, nil
}

// ListPendingParams filters pendings by transaction type.
type ListPendingParams struct {
	Type *domain.TransactionType `form:"type" binding:"omitempty,oneof=income expense"`
}

type ListPendingResponse struct {
	Pending []domain.PendingTransaction `json:"pending"`
}
