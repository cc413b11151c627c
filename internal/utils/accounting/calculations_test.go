package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time { return domain.NewDate(y, m, day) }

func eq(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestSummarize(t *testing.T) {
	empty := Summarize(nil, nil)
	eq(t, "0", empty.TotalIncome)
	eq(t, "0", empty.TotalExpenses)
	eq(t, "0", empty.NetIncome)
	eq(t, "0", empty.ROI)

	s := Summarize(
		[]domain.Income{{Amount: decimal.NewFromInt(1500)}, {Amount: decimal.NewFromInt(1500)}},
		[]domain.Expense{{Amount: decimal.NewFromInt(1000)}},
	)
	eq(t, "3000", s.TotalIncome)
	eq(t, "2000", s.NetIncome)
	eq(t, "66.67", s.ROI)

	loss := Summarize(nil, []domain.Expense{{Amount: decimal.NewFromInt(10)}})
	eq(t, "-10", loss.NetIncome)
	eq(t, "0", loss.ROI)
}

func TestProfitAndLoss_MonthlySeriesForFullYear(t *testing.T) {
	from, to := d(2024, 1, 1), d(2024, 12, 31)
	incomes := []domain.Income{
		{IncomeType: domain.IncomeRent, Amount: decimal.NewFromInt(1000), TransactionDate: d(2024, 1, 5)},
		{IncomeType: domain.IncomeLateFee, Amount: decimal.NewFromInt(50), TransactionDate: d(2024, 1, 20)},
		{IncomeType: domain.IncomeRent, Amount: decimal.NewFromInt(1000), TransactionDate: d(2024, 12, 5)},
	}
	expenses := []domain.Expense{
		{ExpenseType: domain.ExpenseRepairs, Amount: decimal.NewFromInt(300), TransactionDate: d(2024, 12, 9)},
	}

	pnl := ProfitAndLoss(domain.DateWindow{From: &from, To: &to}, incomes, expenses)

	eq(t, "2050", pnl.TotalIncome)
	eq(t, "300", pnl.TotalExpenses)
	eq(t, "1750", pnl.NetIncome)
	eq(t, "2000", pnl.IncomeByCategory[domain.IncomeRent])
	eq(t, "50", pnl.IncomeByCategory[domain.IncomeLateFee])
	require.Len(t, pnl.Monthly, 12)
	assert.Equal(t, "2024-01", pnl.Monthly[0].Month)
	eq(t, "1050", pnl.Monthly[0].Income)
	eq(t, "0", pnl.Monthly[5].NetIncome)
	assert.Equal(t, "2024-12", pnl.Monthly[11].Month)
	eq(t, "700", pnl.Monthly[11].NetIncome)
}

func TestProfitAndLoss_NoSeriesForPartialWindow(t *testing.T) {
	from, to := d(2024, 1, 1), d(2024, 6, 30)
	pnl := ProfitAndLoss(domain.DateWindow{From: &from, To: &to}, nil, nil)
	assert.Empty(t, pnl.Monthly)
}

func TestTransactionReport_OrderAndSignedTotal(t *testing.T) {
	names := map[string]string{"p1": "Elm", "p2": "Oak"}
	incomes := []domain.Income{
		{IncomeID: "i2", PropertyID: "p1", IncomeType: domain.IncomeRent, Amount: decimal.NewFromInt(1500), TransactionDate: d(2024, 2, 5)},
		{IncomeID: "i1", PropertyID: "p2", IncomeType: domain.IncomeRent, Amount: decimal.NewFromInt(900), TransactionDate: d(2024, 1, 5)},
	}
	expenses := []domain.Expense{
		{ExpenseID: "e1", PropertyID: "p1", ExpenseType: domain.ExpenseRepairs, Amount: decimal.NewFromInt(200), TransactionDate: d(2024, 2, 5)},
	}

	r := TransactionReport(names, incomes, expenses)

	require.Len(t, r.Rows, 3)
	assert.Equal(t, "i1", r.Rows[0].TransactionID)
	assert.Equal(t, "Oak", r.Rows[0].PropertyName)
	assert.Equal(t, "e1", r.Rows[1].TransactionID, "expense sorts before income on the same day")
	assert.Equal(t, "i2", r.Rows[2].TransactionID)
	eq(t, "2200", r.Total)
}

func TestPropertyPerformance(t *testing.T) {
	props := []domain.Property{
		{PropertyID: "p1", Name: "Elm", PurchasePrice: decimal.NewFromInt(200000)},
		{PropertyID: "p2", Name: "Oak", PurchasePrice: decimal.Zero},
	}
	incomes := []domain.Income{
		{PropertyID: "p1", Amount: decimal.NewFromInt(18000)},
		{PropertyID: "p2", Amount: decimal.NewFromInt(100)},
	}
	expenses := []domain.Expense{{PropertyID: "p1", Amount: decimal.NewFromInt(8000)}}

	out := PropertyPerformance(props, incomes, expenses)

	require.Len(t, out, 2)
	eq(t, "10000", out[0].NetIncome)
	eq(t, "5", out[0].ROI)
	eq(t, "100", out[1].NetIncome)
	eq(t, "0", out[1].ROI)
}
