package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod describes how a budget window was chosen.
type BudgetPeriod string

const (
	BudgetMonthly BudgetPeriod = "monthly"
	BudgetYearly  BudgetPeriod = "yearly"
	BudgetCustom  BudgetPeriod = "custom"
)

// IsValid reports whether p is a known period.
func (p BudgetPeriod) IsValid() bool {
	return p == BudgetMonthly || p == BudgetYearly || p == BudgetCustom
}

// BudgetScope selects which expenses count against a budget.
type BudgetScope string

const (
	ScopeOrganization BudgetScope = "organization"
	ScopeProperty     BudgetScope = "property"
)

// IsValid reports whether s is a known scope.
func (s BudgetScope) IsValid() bool {
	return s == ScopeOrganization || s == ScopeProperty
}

// Budget is a time-bounded spending envelope for an organization or one property.
type Budget struct {
	BudgetID       string          `json:"budgetID" db:"budget_id"`
	OrganizationID string          `json:"organizationID" db:"organization_id"`
	PropertyID     *string         `json:"propertyID,omitempty" db:"property_id"` // nil means organization-wide
	Name           string          `json:"name" db:"name"`
	Description    *string         `json:"description,omitempty" db:"description"`
	BudgetAmount   decimal.Decimal `json:"budgetAmount" db:"budget_amount"`
	Period         BudgetPeriod    `json:"period" db:"period"`
	Scope          BudgetScope     `json:"scope" db:"scope"`
	StartDate      time.Time       `json:"startDate" db:"start_date"`
	EndDate        time.Time       `json:"endDate" db:"end_date"`
	AuditFields
}

// Window returns the budget's inclusive date range.
func (b Budget) Window() DateWindow {
	start, end := b.StartDate, b.EndDate
	return DateWindow{From: &start, To: &end}
}

// BudgetInput carries the user-editable fields of a budget.
type BudgetInput struct {
	PropertyID   *string
	Name         string
	Description  *string
	BudgetAmount decimal.Decimal
	Period       BudgetPeriod
	Scope        BudgetScope
	StartDate    time.Time
	EndDate      *time.Time
}

// Validate checks the input, derives a missing end date from the period and
// normalizes amounts and dates in place.
func (in *BudgetInput) Validate() error {
	if err := requireNonEmpty("name", in.Name); err != nil {
		return err
	}
	if !in.Period.IsValid() {
		return validationError("invalid budget period: " + string(in.Period))
	}
	if !in.Scope.IsValid() {
		return validationError("invalid budget scope: " + string(in.Scope))
	}
	if in.PropertyID != nil && *in.PropertyID == "" {
		in.PropertyID = nil
	}
	switch in.Scope {
	case ScopeProperty:
		if in.PropertyID == nil {
			return validationError("property scoped budget requires a property id")
		}
	case ScopeOrganization:
		if in.PropertyID != nil {
			return validationError("organization scoped budget must not reference a property")
		}
	}
	if in.StartDate.IsZero() {
		return validationError("start date is required")
	}
	in.StartDate = DateOf(in.StartDate)
	if in.EndDate == nil {
		end, err := PeriodEnd(in.Period, in.StartDate)
		if err != nil {
			return err
		}
		in.EndDate = &end
	}
	end := DateOf(*in.EndDate)
	in.EndDate = &end
	if end.Before(in.StartDate) {
		return validationError("end date must not be before start date")
	}
	amount, err := NormalizeAmount("budget amount", in.BudgetAmount)
	if err != nil {
		return err
	}
	in.BudgetAmount = amount
	return nil
}

// PeriodEnd returns the last day of a monthly or yearly window starting at start.
func PeriodEnd(period BudgetPeriod, start time.Time) (time.Time, error) {
	switch period {
	case BudgetMonthly:
		return AddMonthsClamped(start, 1).AddDate(0, 0, -1), nil
	case BudgetYearly:
		return AddMonthsClamped(start, 12).AddDate(0, 0, -1), nil
	default:
		return time.Time{}, validationError("end date is required for a custom budget period")
	}
}

// NewBudget validates in and builds a budget stamped with the context.
func NewBudget(id string, tc TenancyContext, in BudgetInput, now time.Time) (Budget, error) {
	if err := requireNonEmpty("organization id", tc.OrganizationID); err != nil {
		return Budget{}, err
	}
	if err := requireNonEmpty("user id", tc.UserID); err != nil {
		return Budget{}, err
	}
	if err := in.Validate(); err != nil {
		return Budget{}, err
	}
	b := Budget{
		BudgetID:       id,
		OrganizationID: tc.OrganizationID,
		AuditFields:    NewAuditFields(tc.UserID, now),
	}
	b.Apply(in)
	return b, nil
}

// Apply copies validated input onto the budget.
func (b *Budget) Apply(in BudgetInput) {
	b.PropertyID = in.PropertyID
	b.Name = in.Name
	b.Description = in.Description
	b.BudgetAmount = in.BudgetAmount
	b.Period = in.Period
	b.Scope = in.Scope
	b.StartDate = in.StartDate
	b.EndDate = *in.EndDate
}

// BudgetLine is an optional per-category sub-envelope of a budget.
type BudgetLine struct {
	BudgetLineID   string          `json:"budgetLineID" db:"budget_line_id"`
	BudgetID       string          `json:"budgetID" db:"budget_id"`
	OrganizationID string          `json:"organizationID" db:"organization_id"`
	CategoryID     string          `json:"categoryID" db:"category_id"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount" db:"budgeted_amount"`
	Notes          *string         `json:"notes,omitempty" db:"notes"`
	AuditFields
}

// BudgetLineInput carries the user-editable fields of a budget line.
type BudgetLineInput struct {
	CategoryID     string
	BudgetedAmount decimal.Decimal
	Notes          *string
}

// Validate checks the input and normalizes the amount in place.
func (in *BudgetLineInput) Validate() error {
	if err := requireNonEmpty("category id", in.CategoryID); err != nil {
		return err
	}
	amount, err := NormalizeAmount("budgeted amount", in.BudgetedAmount)
	if err != nil {
		return err
	}
	in.BudgetedAmount = amount
	return nil
}

// NewBudgetLine validates in and builds a line owned by budget.
func NewBudgetLine(id string, budget Budget, userID string, in BudgetLineInput, now time.Time) (BudgetLine, error) {
	if err := requireNonEmpty("budget id", budget.BudgetID); err != nil {
		return BudgetLine{}, err
	}
	if err := in.Validate(); err != nil {
		return BudgetLine{}, err
	}
	return BudgetLine{
		BudgetLineID:   id,
		BudgetID:       budget.BudgetID,
		OrganizationID: budget.OrganizationID,
		CategoryID:     in.CategoryID,
		BudgetedAmount: in.BudgetedAmount,
		Notes:          in.Notes,
		AuditFields:    NewAuditFields(userID, now),
	}, nil
}

// BudgetLineAnalysis compares one line against the expenses of its category.
type BudgetLineAnalysis struct {
	BudgetLineID       string          `json:"budgetLineID"`
	CategoryID         string          `json:"categoryID"`
	CategoryName       string          `json:"categoryName"`
	Budgeted           decimal.Decimal `json:"budgeted"`
	Actual             decimal.Decimal `json:"actual"`
	Variance           decimal.Decimal `json:"variance"`
	VariancePercentage decimal.Decimal `json:"variancePercentage"`
	IsOverBudget       bool            `json:"isOverBudget"`
}

// BudgetAnalysis compares planned to actual spend over a window.
type BudgetAnalysis struct {
	BudgetID           string                          `json:"budgetID"`
	StartDate          time.Time                       `json:"startDate"`
	EndDate            time.Time                       `json:"endDate"`
	TotalBudgeted      decimal.Decimal                 `json:"totalBudgeted"`
	TotalActual        decimal.Decimal                 `json:"totalActual"`
	Variance           decimal.Decimal                 `json:"variance"`
	VariancePercentage decimal.Decimal                 `json:"variancePercentage"`
	IsOverBudget       bool                            `json:"isOverBudget"`
	ActualByCategory   map[ExpenseType]decimal.Decimal `json:"actualByCategory"`
	Lines              []BudgetLineAnalysis            `json:"lines"`
}

// AnalyzeBudget aggregates expenses, which must already be filtered to the
// budget's scope and window, against the budget and its lines. categories maps
// category id to category and is used to match lines to expense types by name.
func AnalyzeBudget(budget Budget, window DateWindow, lines []BudgetLine, categories map[string]Category, expenses []Expense) BudgetAnalysis {
	actual := make(map[ExpenseType]decimal.Decimal)
	totalActual := decimal.Zero
	for _, e := range expenses {
		actual[e.ExpenseType] = actual[e.ExpenseType].Add(e.Amount)
		totalActual = totalActual.Add(e.Amount)
	}

	totalBudgeted := budget.BudgetAmount
	lineResults := make([]BudgetLineAnalysis, 0, len(lines))
	if len(lines) > 0 {
		totalBudgeted = decimal.Zero
		for _, l := range lines {
			totalBudgeted = totalBudgeted.Add(l.BudgetedAmount)
			name := categories[l.CategoryID].Name
			lineActual := actual[ExpenseType(name)]
			variance := lineActual.Sub(l.BudgetedAmount)
			lineResults = append(lineResults, BudgetLineAnalysis{
				BudgetLineID:       l.BudgetLineID,
				CategoryID:         l.CategoryID,
				CategoryName:       name,
				Budgeted:           l.BudgetedAmount,
				Actual:             lineActual,
				Variance:           variance,
				VariancePercentage: Percentage(variance, l.BudgetedAmount),
				IsOverBudget:       lineActual.GreaterThan(l.BudgetedAmount),
			})
		}
	}

	variance := totalActual.Sub(totalBudgeted)
	a := BudgetAnalysis{
		BudgetID:           budget.BudgetID,
		TotalBudgeted:      totalBudgeted,
		TotalActual:        totalActual,
		Variance:           variance,
		VariancePercentage: Percentage(variance, totalBudgeted),
		IsOverBudget:       totalActual.GreaterThan(totalBudgeted),
		ActualByCategory:   actual,
		Lines:              lineResults,
	}
	if window.From != nil {
		a.StartDate = DateOf(*window.From)
	}
	if window.To != nil {
		a.EndDate = DateOf(*window.To)
	}
	return a
}
