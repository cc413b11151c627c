package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurrenceInterval is the stride of a recurring template.
type RecurrenceInterval string

const (
	IntervalWeekly    RecurrenceInterval = "weekly"
	IntervalMonthly   RecurrenceInterval = "monthly"
	IntervalQuarterly RecurrenceInterval = "quarterly"
	IntervalYearly    RecurrenceInterval = "yearly"
)

// IsValid reports whether i is a known interval.
func (i RecurrenceInterval) IsValid() bool {
	switch i {
	case IntervalWeekly, IntervalMonthly, IntervalQuarterly, IntervalYearly:
		return true
	}
	return false
}

// RecurringTransaction is a template that the expansion engine materializes
// into pending transactions, one per due period.
type RecurringTransaction struct {
	RecurringTransactionID string             `json:"recurringTransactionID" db:"recurring_transaction_id"`
	OrganizationID         string             `json:"organizationID" db:"organization_id"`
	PropertyID             string             `json:"propertyID" db:"property_id"`
	TransactionType        TransactionType    `json:"transactionType" db:"transaction_type"`
	IncomeType             *IncomeType        `json:"incomeType,omitempty" db:"income_type"`
	ExpenseType            *ExpenseType       `json:"expenseType,omitempty" db:"expense_type"`
	Amount                 decimal.Decimal    `json:"amount" db:"amount"`
	Description            string             `json:"description" db:"description"`
	Interval               RecurrenceInterval `json:"interval" db:"recurrence_interval"`
	StartDate              time.Time          `json:"startDate" db:"start_date"`
	EndDate                *time.Time         `json:"endDate,omitempty" db:"end_date"`
	IsActive               bool               `json:"isActive" db:"is_active"`
	LastGeneratedOn        *time.Time         `json:"lastGeneratedOn,omitempty" db:"last_generated_on"`
	AuditFields
}

// RecurringInput carries the user-editable fields of a template.
type RecurringInput struct {
	PropertyID      string
	TransactionType TransactionType
	IncomeType      *IncomeType
	ExpenseType     *ExpenseType
	Amount          decimal.Decimal
	Description     string
	Interval        RecurrenceInterval
	StartDate       time.Time
	EndDate         *time.Time
}

// Validate checks the input and normalizes it in place. Exactly one of
// IncomeType and ExpenseType must be set, matching TransactionType.
func (in *RecurringInput) Validate() error {
	if err := requireNonEmpty("property id", in.PropertyID); err != nil {
		return err
	}
	if err := validateCategoryPair(in.TransactionType, in.IncomeType, in.ExpenseType); err != nil {
		return err
	}
	if !in.Interval.IsValid() {
		return validationError("invalid interval: " + string(in.Interval))
	}
	if in.StartDate.IsZero() {
		return validationError("start date is required")
	}
	in.StartDate = DateOf(in.StartDate)
	if in.EndDate != nil {
		end := DateOf(*in.EndDate)
		if end.Before(in.StartDate) {
			return validationError("end date must not be before start date")
		}
		in.EndDate = &end
	}
	amount, err := NormalizeAmount("amount", in.Amount)
	if err != nil {
		return err
	}
	in.Amount = amount
	return nil
}

func validateCategoryPair(t TransactionType, income *IncomeType, expense *ExpenseType) error {
	switch t {
	case TransactionIncome:
		if income == nil || expense != nil {
			return validationError("income transactions require an income type and no expense type")
		}
		if !income.IsValid() {
			return validationError("invalid income type: " + string(*income))
		}
	case TransactionExpense:
		if expense == nil || income != nil {
			return validationError("expense transactions require an expense type and no income type")
		}
		if !expense.IsValid() {
			return validationError("invalid expense type: " + string(*expense))
		}
	default:
		return validationError("invalid transaction type: " + string(t))
	}
	return nil
}

// NewRecurringTransaction validates in and builds an active template.
func NewRecurringTransaction(id string, tc TenancyContext, in RecurringInput, now time.Time) (RecurringTransaction, error) {
	if err := requireNonEmpty("organization id", tc.OrganizationID); err != nil {
		return RecurringTransaction{}, err
	}
	if err := requireNonEmpty("user id", tc.UserID); err != nil {
		return RecurringTransaction{}, err
	}
	if err := in.Validate(); err != nil {
		return RecurringTransaction{}, err
	}
	r := RecurringTransaction{
		RecurringTransactionID: id,
		OrganizationID:         tc.OrganizationID,
		IsActive:               true,
		AuditFields:            NewAuditFields(tc.UserID, now),
	}
	r.Apply(in)
	return r, nil
}

// Apply copies validated input onto the template.
func (r *RecurringTransaction) Apply(in RecurringInput) {
	r.PropertyID = in.PropertyID
	r.TransactionType = in.TransactionType
	r.IncomeType = in.IncomeType
	r.ExpenseType = in.ExpenseType
	r.Amount = in.Amount
	r.Description = in.Description
	r.Interval = in.Interval
	r.StartDate = in.StartDate
	r.EndDate = in.EndDate
}

// DueDateFor returns the occurrence of a schedule that belongs to today's period.
// Monthly, quarterly and yearly schedules keep the start's day of month,
// clamped to the length of the target month, so a schedule starting on the
// 31st is due on the 28th or 29th in February. Before the start, the start is due.
func DueDateFor(start time.Time, interval RecurrenceInterval, today time.Time) time.Time {
	start, today = DateOf(start), DateOf(today)
	if today.Before(start) {
		return start
	}
	switch interval {
	case IntervalWeekly:
		days := int(today.Sub(start).Hours() / 24)
		return start.AddDate(0, 0, 7*(days/7))
	case IntervalQuarterly:
		return AddMonthsClamped(start, monthsBetween(start, today)/3*3)
	case IntervalYearly:
		return AddMonthsClamped(start, 12*(today.Year()-start.Year()))
	default:
		return AddMonthsClamped(start, monthsBetween(start, today))
	}
}

// DueOn returns the template's due date for today and whether the template is
// still running. Only an end date before today ends the schedule; the due date
// itself may fall after the end date when the period's occurrence is clamped.
func (r RecurringTransaction) DueOn(today time.Time) (time.Time, bool) {
	today = DateOf(today)
	if r.EndDate != nil && today.After(DateOf(*r.EndDate)) {
		return time.Time{}, false
	}
	return DueDateFor(r.StartDate, r.Interval, today), true
}

// GeneratedIn reports whether last_generated_on already covers month.
func (r RecurringTransaction) GeneratedIn(month MonthKey) bool {
	return r.LastGeneratedOn != nil && month.Contains(*r.LastGeneratedOn)
}

// Category returns the income or expense type of the template as a string.
func (r RecurringTransaction) Category() string {
	if r.TransactionType == TransactionIncome && r.IncomeType != nil {
		return string(*r.IncomeType)
	}
	if r.ExpenseType != nil {
		return string(*r.ExpenseType)
	}
	return ""
}
