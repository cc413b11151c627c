package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock TenancyService ---
type MockTenancyService struct {
	mock.Mock
}

func (m *MockTenancyService) Resolve(ctx context.Context, userID, organizationID string) (domain.TenancyContext, error) {
	args := m.Called(ctx, userID, organizationID)
	return args.Get(0).(domain.TenancyContext), args.Error(1)
}
func (m *MockTenancyService) ListMemberships(ctx context.Context, userID string) ([]domain.OrganizationMembership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrganizationMembership), args.Error(1)
}
func (m *MockTenancyService) CreateOrganization(ctx context.Context, userID, name string, description *string) (*domain.Organization, error) {
	args := m.Called(ctx, userID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockTenancyService) AddMember(ctx context.Context, tc domain.TenancyContext, targetUserID string, role domain.Role) error {
	args := m.Called(ctx, tc, targetUserID, role)
	return args.Error(0)
}
func (m *MockTenancyService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.Role) error {
	args := m.Called(ctx, userID, organizationID, requiredRole)
	return args.Error(0)
}

var _ portssvc.TenancySvcFacade = (*MockTenancyService)(nil)

// --- Mock PropertyService ---
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) GetProperty(ctx context.Context, tc domain.TenancyContext, propertyID string) (*domain.Property, error) {
	args := m.Called(ctx, tc, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyService) ListProperties(ctx context.Context, tc domain.TenancyContext) ([]domain.Property, error) {
	args := m.Called(ctx, tc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyService) CreateProperty(ctx context.Context, tc domain.TenancyContext, in domain.PropertyInput) (*domain.Property, error) {
	args := m.Called(ctx, tc, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyService) UpdateProperty(ctx context.Context, tc domain.TenancyContext, propertyID string, in domain.PropertyInput) (*domain.Property, error) {
	args := m.Called(ctx, tc, propertyID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyService) DeleteProperty(ctx context.Context, tc domain.TenancyContext, propertyID string) error {
	args := m.Called(ctx, tc, propertyID)
	return args.Error(0)
}

var _ portssvc.PropertySvcFacade = (*MockPropertyService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateIncome(ctx context.Context, tc domain.TenancyContext, in domain.IncomeInput) (*domain.Income, error) {
	args := m.Called(ctx, tc, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}
func (m *MockLedgerService) GetIncome(ctx context.Context, tc domain.TenancyContext, incomeID string) (*domain.Income, error) {
	args := m.Called(ctx, tc, incomeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}
func (m *MockLedgerService) ListIncomes(ctx context.Context, tc domain.TenancyContext, params portssvc.LedgerPageParams) (*portssvc.IncomePage, error) {
	args := m.Called(ctx, tc, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.IncomePage), args.Error(1)
}
func (m *MockLedgerService) UpdateIncome(ctx context.Context, tc domain.TenancyContext, incomeID string, in domain.IncomeInput) (*domain.Income, error) {
	args := m.Called(ctx, tc, incomeID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}
func (m *MockLedgerService) DeleteIncome(ctx context.Context, tc domain.TenancyContext, incomeID string) error {
	args := m.Called(ctx, tc, incomeID)
	return args.Error(0)
}
func (m *MockLedgerService) CreateExpense(ctx context.Context, tc domain.TenancyContext, in domain.ExpenseInput) (*domain.Expense, error) {
	args := m.Called(ctx, tc, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockLedgerService) GetExpense(ctx context.Context, tc domain.TenancyContext, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, tc, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockLedgerService) ListExpenses(ctx context.Context, tc domain.TenancyContext, params portssvc.LedgerPageParams) (*portssvc.ExpensePage, error) {
	args := m.Called(ctx, tc, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.ExpensePage), args.Error(1)
}
func (m *MockLedgerService) UpdateExpense(ctx context.Context, tc domain.TenancyContext, expenseID string, in domain.ExpenseInput) (*domain.Expense, error) {
	args := m.Called(ctx, tc, expenseID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockLedgerService) DeleteExpense(ctx context.Context, tc domain.TenancyContext, expenseID string) error {
	args := m.Called(ctx, tc, expenseID)
	return args.Error(0)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock PendingService ---
type MockPendingService struct {
	mock.Mock
}

func (m *MockPendingService) ListPending(ctx context.Context, tc domain.TenancyContext, transactionType *domain.TransactionType) ([]domain.PendingTransaction, error) {
	args := m.Called(ctx, tc, transactionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingTransaction), args.Error(1)
}
func (m *MockPendingService) GetPending(ctx context.Context, tc domain.TenancyContext, pendingID string) (*domain.PendingTransaction, error) {
	args := m.Called(ctx, tc, pendingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingTransaction), args.Error(1)
}
func (m *MockPendingService) EditPending(ctx context.Context, tc domain.TenancyContext, pendingID string, patch domain.PendingPatch) (*domain.PendingTransaction, error) {
	args := m.Called(ctx, tc, pendingID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingTransaction), args.Error(1)
}
func (m *MockPendingService) DiscardPending(ctx context.Context, tc domain.TenancyContext, pendingID string) error {
	args := m.Called(ctx, tc, pendingID)
	return args.Error(0)
}
func (m *MockPendingService) ConfirmPending(ctx context.Context, tc domain.TenancyContext, pendingID string) (*portssvc.ConfirmResult, error) {
	args := m.Called(ctx, tc, pendingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.ConfirmResult), args.Error(1)
}

var _ portssvc.PendingSvcFacade = (*MockPendingService)(nil)

// --- Mock RecurringService ---
type MockRecurringService struct {
	mock.Mock
}

func (m *MockRecurringService) GetRecurring(ctx context.Context, tc domain.TenancyContext, recurringID string) (*domain.RecurringTransaction, error) {
	args := m.Called(ctx, tc, recurringID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringTransaction), args.Error(1)
}
func (m *MockRecurringService) ListRecurring(ctx context.Context, tc domain.TenancyContext, activeOnly bool) ([]domain.RecurringTransaction, error) {
	args := m.Called(ctx, tc, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringTransaction), args.Error(1)
}
func (m *MockRecurringService) CreateRecurring(ctx context.Context, tc domain.TenancyContext, in domain.RecurringInput) (*domain.RecurringTransaction, error) {
	args := m.Called(ctx, tc, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringTransaction), args.Error(1)
}
func (m *MockRecurringService) UpdateRecurring(ctx context.Context, tc domain.TenancyContext, recurringID string, in domain.RecurringInput) (*domain.RecurringTransaction, error) {
	args := m.Called(ctx, tc, recurringID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringTransaction), args.Error(1)
}
func (m *MockRecurringService) DeactivateRecurring(ctx context.Context, tc domain.TenancyContext, recurringID string) error {
	return m.Called(ctx, tc, recurringID).Error(0)
}
func (m *MockRecurringService) ReactivateRecurring(ctx context.Context, tc domain.TenancyContext, recurringID string) error {
	return m.Called(ctx, tc, recurringID).Error(0)
}
func (m *MockRecurringService) DeleteRecurring(ctx context.Context, tc domain.TenancyContext, recurringID string) error {
	return m.Called(ctx, tc, recurringID).Error(0)
}
func (m *MockRecurringService) ExpandPending(ctx context.Context, tc domain.TenancyContext, today time.Time) (domain.ExpansionResult, error) {
	args := m.Called(ctx, tc, today)
	return args.Get(0).(domain.ExpansionResult), args.Error(1)
}

var _ portssvc.RecurringSvcFacade = (*MockRecurringService)(nil)
