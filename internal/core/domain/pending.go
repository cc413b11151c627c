package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingTransaction is a materialized instance of a recurring template that
// awaits confirmation. RecurringTransactionID is a weak reference: the row
// outlives its template.
type PendingTransaction struct {
	PendingTransactionID   string          `json:"pendingTransactionID" db:"pending_transaction_id"`
	OrganizationID         string          `json:"organizationID" db:"organization_id"`
	PropertyID             string          `json:"propertyID" db:"property_id"`
	RecurringTransactionID string          `json:"recurringTransactionID" db:"recurring_transaction_id"`
	TransactionType        TransactionType `json:"transactionType" db:"transaction_type"`
	IncomeType             *IncomeType     `json:"incomeType,omitempty" db:"income_type"`
	ExpenseType            *ExpenseType    `json:"expenseType,omitempty" db:"expense_type"`
	Amount                 decimal.Decimal `json:"amount" db:"amount"`
	Description            string          `json:"description" db:"description"`
	TransactionDate        time.Time       `json:"transactionDate" db:"transaction_date"`
	MonthKey               string          `json:"monthKey" db:"month_key"` // YYYY-MM of the due date it was generated for
	IsConfirmed            bool            `json:"isConfirmed" db:"is_confirmed"`
	AuditFields
}

// NewPendingFromRecurring materializes r for due. Generated rows carry the
// template's creator as their author.
func NewPendingFromRecurring(id string, r RecurringTransaction, due time.Time, now time.Time) PendingTransaction {
	due = DateOf(due)
	return PendingTransaction{
		PendingTransactionID:   id,
		OrganizationID:         r.OrganizationID,
		PropertyID:             r.PropertyID,
		RecurringTransactionID: r.RecurringTransactionID,
		TransactionType:        r.TransactionType,
		IncomeType:             r.IncomeType,
		ExpenseType:            r.ExpenseType,
		Amount:                 r.Amount,
		Description:            r.Description,
		TransactionDate:        due,
		MonthKey:               MonthKeyOf(due).String(),
		IsConfirmed:            false,
		AuditFields:            NewAuditFields(r.CreatedBy, now),
	}
}

// PendingPatch lists the mutable fields of a pending transaction. Nil fields are left unchanged.
type PendingPatch struct {
	Amount          *decimal.Decimal
	Description     *string
	TransactionDate *time.Time
	IncomeType      *IncomeType
	ExpenseType     *ExpenseType
}

// ApplyPatch validates and applies patch. The category must stay consistent
// with the transaction type.
func (p *PendingTransaction) ApplyPatch(patch PendingPatch, userID string, now time.Time) error {
	next := *p
	if patch.Amount != nil {
		amount, err := NormalizeAmount("amount", *patch.Amount)
		if err != nil {
			return err
		}
		next.Amount = amount
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.TransactionDate != nil {
		if patch.TransactionDate.IsZero() {
			return validationError("transaction date is required")
		}
		next.TransactionDate = DateOf(*patch.TransactionDate)
	}
	if patch.IncomeType != nil {
		if next.TransactionType != TransactionIncome {
			return validationError("income type cannot be set on an expense")
		}
		next.IncomeType = patch.IncomeType
	}
	if patch.ExpenseType != nil {
		if next.TransactionType != TransactionExpense {
			return validationError("expense type cannot be set on an income")
		}
		next.ExpenseType = patch.ExpenseType
	}
	if err := validateCategoryPair(next.TransactionType, next.IncomeType, next.ExpenseType); err != nil {
		return err
	}
	next.Touch(userID, now)
	*p = next
	return nil
}

// IncomeInput returns the realized income fields for an income pending.
func (p PendingTransaction) IncomeInput() IncomeInput {
	in := IncomeInput{
		PropertyID:      p.PropertyID,
		Amount:          p.Amount,
		Description:     p.Description,
		TransactionDate: p.TransactionDate,
	}
	if p.IncomeType != nil {
		in.IncomeType = *p.IncomeType
	}
	return in
}

// ExpenseInput returns the realized expense fields for an expense pending.
func (p PendingTransaction) ExpenseInput() ExpenseInput {
	in := ExpenseInput{
		PropertyID:      p.PropertyID,
		Amount:          p.Amount,
		Description:     p.Description,
		TransactionDate: p.TransactionDate,
	}
	if p.ExpenseType != nil {
		in.ExpenseType = *p.ExpenseType
	}
	return in
}

// MatchKey identifies the realized row a confirmation of p would create.
func (p PendingTransaction) MatchKey() MatchKey {
	return MatchKey{
		OrganizationID: p.OrganizationID,
		PropertyID:     p.PropertyID,
		Amount:         p.Amount,
		Date:           p.TransactionDate,
	}
}

// IsRent reports whether p is a rent income.
func (p PendingTransaction) IsRent() bool {
	return p.TransactionType == TransactionIncome && p.IncomeType != nil && *p.IncomeType == IncomeRent
}
