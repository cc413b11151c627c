package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tells which ledger a row belongs to.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// IsValid reports whether t is income or expense.
func (t TransactionType) IsValid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// IncomeType categorizes a realized receipt.
type IncomeType string

const (
	IncomeRent    IncomeType = "rent"
	IncomeDeposit IncomeType = "deposit"
	IncomeLateFee IncomeType = "late_fee"
	IncomeOther   IncomeType = "other"
)

// IsValid reports whether t is a known income type.
func (t IncomeType) IsValid() bool {
	switch t {
	case IncomeRent, IncomeDeposit, IncomeLateFee, IncomeOther:
		return true
	}
	return false
}

// ExpenseType categorizes a realized outflow.
type ExpenseType string

const (
	ExpenseMortgage    ExpenseType = "mortgage"
	ExpenseMaintenance ExpenseType = "maintenance"
	ExpenseRepairs     ExpenseType = "repairs"
	ExpenseUtilities   ExpenseType = "utilities"
	ExpenseInsurance   ExpenseType = "insurance"
	ExpenseTaxes       ExpenseType = "taxes"
	ExpenseManagement  ExpenseType = "management"
	ExpenseAdvertising ExpenseType = "advertising"
	ExpenseLegal       ExpenseType = "legal"
	ExpenseHOA         ExpenseType = "hoa"
	ExpenseOther       ExpenseType = "other"
)

// IsValid reports whether t is a known expense type.
func (t ExpenseType) IsValid() bool {
	switch t {
	case ExpenseMortgage, ExpenseMaintenance, ExpenseRepairs, ExpenseUtilities,
		ExpenseInsurance, ExpenseTaxes, ExpenseManagement, ExpenseAdvertising,
		ExpenseLegal, ExpenseHOA, ExpenseOther:
		return true
	}
	return false
}

// Income is a realized receipt against a property.
type Income struct {
	IncomeID        string          `json:"incomeID" db:"income_id"`
	OrganizationID  string          `json:"organizationID" db:"organization_id"`
	PropertyID      string          `json:"propertyID" db:"property_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	IncomeType      IncomeType      `json:"incomeType" db:"income_type"`
	Description     string          `json:"description" db:"description"`
	TransactionDate time.Time       `json:"transactionDate" db:"transaction_date"`
	AuditFields
}

// Expense is a realized outflow against a property.
type Expense struct {
	ExpenseID       string          `json:"expenseID" db:"expense_id"`
	OrganizationID  string          `json:"organizationID" db:"organization_id"`
	PropertyID      string          `json:"propertyID" db:"property_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	ExpenseType     ExpenseType     `json:"expenseType" db:"expense_type"`
	Description     string          `json:"description" db:"description"`
	TransactionDate time.Time       `json:"transactionDate" db:"transaction_date"`
	ReceiptURL      *string         `json:"receiptURL,omitempty" db:"receipt_url"`
	AuditFields
}

// IncomeInput carries the user-editable fields of an income.
type IncomeInput struct {
	PropertyID      string
	Amount          decimal.Decimal
	IncomeType      IncomeType
	Description     string
	TransactionDate time.Time
}

// Validate checks the input and normalizes it in place.
func (in *IncomeInput) Validate() error {
	if err := requireNonEmpty("property id", in.PropertyID); err != nil {
		return err
	}
	if !in.IncomeType.IsValid() {
		return validationError("invalid income type: " + string(in.IncomeType))
	}
	if in.TransactionDate.IsZero() {
		return validationError("transaction date is required")
	}
	amount, err := NormalizeAmount("amount", in.Amount)
	if err != nil {
		return err
	}
	in.Amount = amount
	in.TransactionDate = DateOf(in.TransactionDate)
	return nil
}

// NewIncome validates in and builds an income stamped with the context.
func NewIncome(id string, tc TenancyContext, in IncomeInput, now time.Time) (Income, error) {
	if err := requireNonEmpty("organization id", tc.OrganizationID); err != nil {
		return Income{}, err
	}
	if err := requireNonEmpty("user id", tc.UserID); err != nil {
		return Income{}, err
	}
	if err := in.Validate(); err != nil {
		return Income{}, err
	}
	i := Income{
		IncomeID:       id,
		OrganizationID: tc.OrganizationID,
		AuditFields:    NewAuditFields(tc.UserID, now),
	}
	i.Apply(in)
	return i, nil
}

// Apply copies validated input onto the income.
func (i *Income) Apply(in IncomeInput) {
	i.PropertyID = in.PropertyID
	i.Amount = in.Amount
	i.IncomeType = in.IncomeType
	i.Description = in.Description
	i.TransactionDate = in.TransactionDate
}

// ExpenseInput carries the user-editable fields of an expense.
type ExpenseInput struct {
	PropertyID      string
	Amount          decimal.Decimal
	ExpenseType     ExpenseType
	Description     string
	TransactionDate time.Time
	ReceiptURL      *string
}

// Validate checks the input and normalizes it in place.
func (in *ExpenseInput) Validate() error {
	if err := requireNonEmpty("property id", in.PropertyID); err != nil {
		return err
	}
	if !in.ExpenseType.IsValid() {
		return validationError("invalid expense type: " + string(in.ExpenseType))
	}
	if in.TransactionDate.IsZero() {
		return validationError("transaction date is required")
	}
	amount, err := NormalizeAmount("amount", in.Amount)
	if err != nil {
		return err
	}
	in.Amount = amount
	in.TransactionDate = DateOf(in.TransactionDate)
	return nil
}

// NewExpense validates in and builds an expense stamped with the context.
func NewExpense(id string, tc TenancyContext, in ExpenseInput, now time.Time) (Expense, error) {
	if err := requireNonEmpty("organization id", tc.OrganizationID); err != nil {
		return Expense{}, err
	}
	if err := requireNonEmpty("user id", tc.UserID); err != nil {
		return Expense{}, err
	}
	if err := in.Validate(); err != nil {
		return Expense{}, err
	}
	e := Expense{
		ExpenseID:      id,
		OrganizationID: tc.OrganizationID,
		AuditFields:    NewAuditFields(tc.UserID, now),
	}
	e.Apply(in)
	return e, nil
}

// Apply copies validated input onto the expense.
func (e *Expense) Apply(in ExpenseInput) {
	e.PropertyID = in.PropertyID
	e.Amount = in.Amount
	e.ExpenseType = in.ExpenseType
	e.Description = in.Description
	e.TransactionDate = in.TransactionDate
	e.ReceiptURL = in.ReceiptURL
}

// LedgerFilter selects realized rows of one organization.
type LedgerFilter struct {
	OrganizationID string
	PropertyID     *string
	Window         DateWindow
}

// MatchKey identifies a realized row for idempotence checks.
type MatchKey struct {
	OrganizationID string
	PropertyID     string
	Amount         decimal.Decimal
	Date           time.Time
}
