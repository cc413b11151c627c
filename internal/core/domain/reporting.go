package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialSummary holds totals and derived ratios over a window.
type FinancialSummary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	ROI           decimal.Decimal `json:"roi"`
}

// MonthlyProfitAndLoss is one point of a profit-and-loss series.
type MonthlyProfitAndLoss struct {
	Month     string          `json:"month"` // YYYY-MM
	Income    decimal.Decimal `json:"income"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetIncome decimal.Decimal `json:"netIncome"`
}

// ProfitAndLoss totals income and expenses per category over a window.
type ProfitAndLoss struct {
	StartDate          time.Time                       `json:"startDate"`
	EndDate            time.Time                       `json:"endDate"`
	TotalIncome        decimal.Decimal                 `json:"totalIncome"`
	TotalExpenses      decimal.Decimal                 `json:"totalExpenses"`
	NetIncome          decimal.Decimal                 `json:"netIncome"`
	IncomeByCategory   map[IncomeType]decimal.Decimal  `json:"incomeByCategory"`
	ExpensesByCategory map[ExpenseType]decimal.Decimal `json:"expensesByCategory"`
	Monthly            []MonthlyProfitAndLoss          `json:"monthly,omitempty"` // only for full calendar years
}

// TransactionTypeFilter narrows a transaction report.
type TransactionTypeFilter string

const (
	FilterAll     TransactionTypeFilter = "all"
	FilterIncome  TransactionTypeFilter = "income"
	FilterExpense TransactionTypeFilter = "expense"
)

// IsValid reports whether f is a known filter.
func (f TransactionTypeFilter) IsValid() bool {
	return f == FilterAll || f == FilterIncome || f == FilterExpense
}

// TransactionReportFilter selects the rows of a transaction report.
type TransactionReportFilter struct {
	Window     DateWindow
	PropertyID *string
	Type       TransactionTypeFilter
}

// TransactionReportRow is one realized income or expense.
type TransactionReportRow struct {
	TransactionID   string          `json:"transactionID"`
	TransactionDate time.Time       `json:"transactionDate"`
	Type            TransactionType `json:"type"`
	Category        string          `json:"category"`
	PropertyID      string          `json:"propertyID"`
	PropertyName    string          `json:"propertyName"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
}

// TransactionReport lists realized rows with a signed grand total where
// incomes count positive and expenses negative.
type TransactionReport struct {
	Rows  []TransactionReportRow `json:"rows"`
	Total decimal.Decimal        `json:"total"`
}

// PropertyPerformance holds per-property totals. ROI is measured against the purchase price.
type PropertyPerformance struct {
	PropertyID    string          `json:"propertyID"`
	PropertyName  string          `json:"propertyName"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	ROI           decimal.Decimal `json:"roi"`
}

// ExpansionResult reports the outcome of one recurring expansion pass.
type ExpansionResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Add accumulates other into r.
func (r *ExpansionResult) Add(other ExpansionResult) {
	r.Created += other.Created
	r.Skipped += other.Skipped
	r.Failed += other.Failed
}

// ReminderRunResult reports the outcome of one due-reminder pass.
type ReminderRunResult struct {
	Sent     int `json:"sent"`
	Recorded int `json:"recorded"` // reminders closed because rent was found
	Failed   int `json:"failed"`
}
