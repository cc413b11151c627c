package accounting

import (
	"sort"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the ledger sign convention: income is positive, expense negative.
func SignedAmount(t domain.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if t == domain.TransactionExpense {
		return amount.Neg()
	}
	return amount
}

// SumIncomes totals the amounts of incomes.
func SumIncomes(incomes []domain.Income) decimal.Decimal {
	total := decimal.Zero
	for _, i := range incomes {
		total = total.Add(i.Amount)
	}
	return total
}

// SumExpenses totals the amounts of expenses.
func SumExpenses(expenses []domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Summarize totals the given rows. ROI is net income over total income.
func Summarize(incomes []domain.Income, expenses []domain.Expense) domain.FinancialSummary {
	income := SumIncomes(incomes)
	expense := SumExpenses(expenses)
	net := income.Sub(expense)
	return domain.FinancialSummary{
		TotalIncome:   income,
		TotalExpenses: expense,
		NetIncome:     net,
		ROI:           domain.Percentage(net, income),
	}
}

// ProfitAndLoss builds per-category totals over window and, when the window is
// a full calendar year, a twelve-point monthly series.
func ProfitAndLoss(window domain.DateWindow, incomes []domain.Income, expenses []domain.Expense) domain.ProfitAndLoss {
	pnl := domain.ProfitAndLoss{
		IncomeByCategory:   make(map[domain.IncomeType]decimal.Decimal),
		ExpensesByCategory: make(map[domain.ExpenseType]decimal.Decimal),
	}
	if window.From != nil {
		pnl.StartDate = domain.DateOf(*window.From)
	}
	if window.To != nil {
		pnl.EndDate = domain.DateOf(*window.To)
	}
	for _, i := range incomes {
		pnl.IncomeByCategory[i.IncomeType] = pnl.IncomeByCategory[i.IncomeType].Add(i.Amount)
	}
	for _, e := range expenses {
		pnl.ExpensesByCategory[e.ExpenseType] = pnl.ExpensesByCategory[e.ExpenseType].Add(e.Amount)
	}
	pnl.TotalIncome = SumIncomes(incomes)
	pnl.TotalExpenses = SumExpenses(expenses)
	pnl.NetIncome = pnl.TotalIncome.Sub(pnl.TotalExpenses)

	if window.IsFullCalendarYear() {
		year := pnl.StartDate.Year()
		series := make([]domain.MonthlyProfitAndLoss, 12)
		for m := range series {
			series[m] = domain.MonthlyProfitAndLoss{
				Month:     domain.MonthKey{Year: year, Month: time.Month(m + 1)}.String(),
				Income:    decimal.Zero,
				Expenses:  decimal.Zero,
				NetIncome: decimal.Zero,
			}
		}
		for _, i := range incomes {
			idx := int(i.TransactionDate.Month()) - 1
			series[idx].Income = series[idx].Income.Add(i.Amount)
		}
		for _, e := range expenses {
			idx := int(e.TransactionDate.Month()) - 1
			series[idx].Expenses = series[idx].Expenses.Add(e.Amount)
		}
		for m := range series {
			series[m].NetIncome = series[m].Income.Sub(series[m].Expenses)
		}
		pnl.Monthly = series
	}
	return pnl
}

// TransactionReport merges incomes and expenses into rows ordered by
// (transaction date, type) and totals them with signs applied.
func TransactionReport(propertyNames map[string]string, incomes []domain.Income, expenses []domain.Expense) domain.TransactionReport {
	rows := make([]domain.TransactionReportRow, 0, len(incomes)+len(expenses))
	for _, i := range incomes {
		rows = append(rows, domain.TransactionReportRow{
			TransactionID:   i.IncomeID,
			TransactionDate: i.TransactionDate,
			Type:            domain.TransactionIncome,
			Category:        string(i.IncomeType),
			PropertyID:      i.PropertyID,
			PropertyName:    propertyNames[i.PropertyID],
			Description:     i.Description,
			Amount:          i.Amount,
		})
	}
	for _, e := range expenses {
		rows = append(rows, domain.TransactionReportRow{
			TransactionID:   e.ExpenseID,
			TransactionDate: e.TransactionDate,
			Type:            domain.TransactionExpense,
			Category:        string(e.ExpenseType),
			PropertyID:      e.PropertyID,
			PropertyName:    propertyNames[e.PropertyID],
			Description:     e.Description,
			Amount:          e.Amount,
		})
	}
	sort.SliceStable(rows, func(a, b int) bool {
		if !rows[a].TransactionDate.Equal(rows[b].TransactionDate) {
			return rows[a].TransactionDate.Before(rows[b].TransactionDate)
		}
		return rows[a].Type < rows[b].Type
	})

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(SignedAmount(r.Type, r.Amount))
	}
	return domain.TransactionReport{Rows: rows, Total: total}
}

// PropertyPerformance totals each property's rows. ROI is net income over the
// purchase price, zero when the price is zero. Output follows the order of properties.
func PropertyPerformance(properties []domain.Property, incomes []domain.Income, expenses []domain.Expense) []domain.PropertyPerformance {
	incomeBy := make(map[string]decimal.Decimal)
	for _, i := range incomes {
		incomeBy[i.PropertyID] = incomeBy[i.PropertyID].Add(i.Amount)
	}
	expenseBy := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		expenseBy[e.PropertyID] = expenseBy[e.PropertyID].Add(e.Amount)
	}

	out := make([]domain.PropertyPerformance, 0, len(properties))
	for _, p := range properties {
		income, expense := incomeBy[p.PropertyID], expenseBy[p.PropertyID]
		net := income.Sub(expense)
		out = append(out, domain.PropertyPerformance{
			PropertyID:    p.PropertyID,
			PropertyName:  p.Name,
			PurchasePrice: p.PurchasePrice,
			TotalIncome:   income,
			TotalExpenses: expense,
			NetIncome:     net,
			ROI:           domain.Percentage(net, p.PurchasePrice),
		})
	}
	return out
}
