package services_test

import (
	"testing"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	serviceSuite
	year domain.DateWindow
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.serviceSuite.SetupTest()
	s.year = domain.DateWindow{From: ptr(date(2024, 1, 1)), To: ptr(date(2024, 12, 31))}
}

func (s *ReportingServiceTestSuite) seedLedger() {
	s.createIncome(domain.IncomeRent, 1500, date(2024, 1, 5))
	s.createIncome(domain.IncomeRent, 1500, date(2024, 2, 5))
	s.createIncome(domain.IncomeLateFee, 100, date(2024, 12, 15))
	s.createExpense(domain.ExpenseMaintenance, 900, date(2024, 1, 5))
	s.createExpense(domain.ExpenseUtilities, 200, date(2024, 2, 10))
	// Outside the year.
	s.createExpense(domain.ExpenseTaxes, 5000, date(2023, 12, 31))
}

func (s *ReportingServiceTestSuite) TestSummary_NoDataIsZero() {
	summary, err := s.svc.Summary.Summarize(s.ctx, s.owner, s.property.PropertyID, domain.DateWindow{})
	s.Require().NoError(err)
	s.True(summary.TotalIncome.IsZero())
	s.True(summary.TotalExpenses.IsZero())
	s.True(summary.NetIncome.IsZero())
	s.True(summary.ROI.IsZero())
}

func (s *ReportingServiceTestSuite) TestSummary_WindowAndRatio() {
	s.seedLedger()

	summary, err := s.svc.Summary.Summarize(s.ctx, s.owner, s.property.PropertyID, s.year)
	s.Require().NoError(err)
	s.assertDecimal("3100", summary.TotalIncome)
	s.assertDecimal("1100", summary.TotalExpenses)
	s.assertDecimal("2000", summary.NetIncome)
	s.assertDecimal("64.52", summary.ROI)

	all, err := s.svc.Summary.SummarizeOrganization(s.ctx, s.owner, domain.DateWindow{})
	s.Require().NoError(err)
	s.assertDecimal("6100", all.TotalExpenses)

	_, err = s.svc.Summary.Summarize(s.ctx, s.owner, "missing", s.year)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ReportingServiceTestSuite) TestProfitAndLoss_FullYearHasMonthlySeries() {
	s.seedLedger()

	pnl, err := s.svc.Reporting.ProfitAndLoss(s.ctx, s.owner, s.year)
	s.Require().NoError(err)
	s.assertDecimal("3100", pnl.TotalIncome)
	s.assertDecimal("1100", pnl.TotalExpenses)
	s.assertDecimal("2000", pnl.NetIncome)
	s.assertDecimal("3000", pnl.IncomeByCategory[domain.IncomeRent])
	s.assertDecimal("100", pnl.IncomeByCategory[domain.IncomeLateFee])
	s.assertDecimal("900", pnl.ExpensesByCategory[domain.ExpenseMaintenance])
	s.Require().Len(pnl.Monthly, 12)
	s.Equal("2024-01", pnl.Monthly[0].Month)
	s.assertDecimal("600", pnl.Monthly[0].NetIncome)
	s.assertDecimal("100", pnl.Monthly[11].Income)

	quarter, err := s.svc.Reporting.ProfitAndLoss(s.ctx, s.owner, domain.DateWindow{
		From: ptr(date(2024, 1, 1)),
		To:   ptr(date(2024, 3, 31)),
	})
	s.Require().NoError(err)
	s.Empty(quarter.Monthly)
	s.assertDecimal("3000", quarter.TotalIncome)
}

func (s *ReportingServiceTestSuite) TestTransactions_OrderAndSignedTotal() {
	s.seedLedger()

	report, err := s.svc.Reporting.Transactions(s.ctx, s.owner, domain.TransactionReportFilter{Window: s.year})
	s.Require().NoError(err)
	s.Require().Len(report.Rows, 5)
	s.Equal(domain.TransactionExpense, report.Rows[0].Type)
	s.Equal(domain.TransactionIncome, report.Rows[1].Type)
	s.Equal(date(2024, 1, 5), report.Rows[1].TransactionDate)
	s.Equal("Maple Court", report.Rows[0].PropertyName)
	s.Equal(date(2024, 12, 15), report.Rows[4].TransactionDate)
	s.assertDecimal("2000", report.Total)

	incomes, err := s.svc.Reporting.Transactions(s.ctx, s.owner, domain.TransactionReportFilter{
		Window: s.year,
		Type:   domain.FilterIncome,
	})
	s.Require().NoError(err)
	s.Len(incomes.Rows, 3)
	s.assertDecimal("3100", incomes.Total)

	_, err = s.svc.Reporting.Transactions(s.ctx, s.owner, domain.TransactionReportFilter{Type: "transfers"})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Reporting.Transactions(s.ctx, s.owner, domain.TransactionReportFilter{PropertyID: ptr("missing")})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ReportingServiceTestSuite) TestReportsIgnorePendings() {
	_, err := s.svc.Recurring.CreateRecurring(s.ctx, s.owner, domain.RecurringInput{
		PropertyID:      s.property.PropertyID,
		TransactionType: domain.TransactionIncome,
		IncomeType:      ptr(domain.IncomeRent),
		Amount:          decimal.NewFromInt(1500),
		Interval:        domain.IntervalMonthly,
		StartDate:       date(2024, 1, 5),
	})
	s.Require().NoError(err)
	_, err = s.svc.Recurring.ExpandPending(s.ctx, s.owner, date(2024, 4, 7))
	s.Require().NoError(err)

	report, err := s.svc.Reporting.Transactions(s.ctx, s.owner, domain.TransactionReportFilter{Window: s.year})
	s.Require().NoError(err)
	s.Empty(report.Rows)
	s.True(report.Total.IsZero())
}

func (s *ReportingServiceTestSuite) TestPropertyPerformance() {
	s.seedLedger()
	other := s.createProperty("Birch House")

	rows, err := s.svc.Reporting.PropertyPerformance(s.ctx, s.owner, s.year, nil)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(other.PropertyID, rows[0].PropertyID)
	s.True(rows[0].ROI.IsZero())
	s.assertDecimal("2000", rows[1].NetIncome)
	s.assertDecimal("1", rows[1].ROI)

	single, err := s.svc.Reporting.PropertyPerformance(s.ctx, s.owner, s.year, ptr(s.property.PropertyID))
	s.Require().NoError(err)
	s.Require().Len(single, 1)
	s.assertDecimal("3100", single[0].TotalIncome)
}
