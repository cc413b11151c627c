package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/internal/core/services"
	"github.com/SscSPs/property_ledger_app/internal/testutil/memstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RentReminderNotifier ---
type MockNotifier struct {
	mock.Mock
}

var _ portssvc.RentReminderNotifier = (*MockNotifier)(nil)

func (m *MockNotifier) NotifyRentReminder(ctx context.Context, property domain.Property, reminder domain.RentReminder) error {
	args := m.Called(ctx, property, reminder)
	return args.Error(0)
}

const ownerUserID = "user-owner"

// serviceSuite wires the full service container over an in-memory store with
// one organization, its owner and one property.
type serviceSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memstore.Store
	notifier *MockNotifier
	svc      *portssvc.ServiceContainer
	now      time.Time
	owner    domain.TenancyContext
	property domain.Property
}

func (s *serviceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.notifier = new(MockNotifier)
	s.now = time.Date(2024, time.April, 7, 9, 30, 0, 0, time.UTC)
	s.svc = services.NewServiceContainer(s.store.Provider(), s.notifier,
		services.WithClock(func() time.Time { return s.now }))

	org, err := s.svc.Tenancy.CreateOrganization(s.ctx, ownerUserID, "Org A", nil)
	s.Require().NoError(err)
	s.owner, err = s.svc.Tenancy.Resolve(s.ctx, ownerUserID, org.OrganizationID)
	s.Require().NoError(err)
	s.property = s.createProperty("Maple Court")
}

func (s *serviceSuite) createProperty(name string) domain.Property {
	p, err := s.svc.Property.CreateProperty(s.ctx, s.owner, domain.PropertyInput{
		Name:          name,
		Address:       "1 Main St",
		PropertyType:  domain.PropertyHouse,
		PurchasePrice: decimal.NewFromInt(200000),
		MonthlyRent:   decimal.NewFromInt(1500),
	})
	s.Require().NoError(err)
	return *p
}

func (s *serviceSuite) addMember(userID string, role domain.Role) domain.TenancyContext {
	s.Require().NoError(s.svc.Tenancy.AddMember(s.ctx, s.owner, userID, role))
	tc, err := s.svc.Tenancy.Resolve(s.ctx, userID, s.owner.OrganizationID)
	s.Require().NoError(err)
	return tc
}

func (s *serviceSuite) createIncome(t domain.IncomeType, amount int64, date time.Time) domain.Income {
	i, err := s.svc.Ledger.CreateIncome(s.ctx, s.owner, domain.IncomeInput{
		PropertyID:      s.property.PropertyID,
		Amount:          decimal.NewFromInt(amount),
		IncomeType:      t,
		TransactionDate: date,
	})
	s.Require().NoError(err)
	return *i
}

func (s *serviceSuite) createExpense(t domain.ExpenseType, amount int64, date time.Time) domain.Expense {
	e, err := s.svc.Ledger.CreateExpense(s.ctx, s.owner, domain.ExpenseInput{
		PropertyID:      s.property.PropertyID,
		Amount:          decimal.NewFromInt(amount),
		ExpenseType:     t,
		TransactionDate: date,
	})
	s.Require().NoError(err)
	return *e
}

func (s *serviceSuite) assertDecimal(expected string, actual decimal.Decimal) {
	s.T().Helper()
	s.True(decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func date(year int, month time.Month, day int) time.Time {
	return domain.NewDate(year, month, day)
}

func ptr[T any](v T) *T {
	return &v
}
