// Package memstore is an in-memory implementation of every repository port.
// It enforces the same write stamps and uniqueness rules as the PostgreSQL
// schema so service tests exercise the real guard paths.
package memstore

import (
	"sync"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
)

// Store holds all tables behind one lock.
type Store struct {
	mu sync.RWMutex

	organizations map[string]domain.Organization
	memberships   map[membershipKey]domain.Membership
	properties    map[string]domain.Property
	incomes       map[string]domain.Income
	expenses      map[string]domain.Expense
	categories    map[string]domain.Category
	budgets       map[string]domain.Budget
	budgetLines   map[string]domain.BudgetLine
	recurring     map[string]domain.RecurringTransaction
	pending       map[string]domain.PendingTransaction
	reminders     map[string]domain.RentReminder

	// Fail injects an error for the named method. Tests set it to simulate
	// backend failures.
	Fail map[string]error
}

type membershipKey struct {
	userID         string
	organizationID string
}

// New returns an empty store seeded with the default categories.
func New() *Store {
	s := &Store{
		organizations: make(map[string]domain.Organization),
		memberships:   make(map[membershipKey]domain.Membership),
		properties:    make(map[string]domain.Property),
		incomes:       make(map[string]domain.Income),
		expenses:      make(map[string]domain.Expense),
		categories:    make(map[string]domain.Category),
		budgets:       make(map[string]domain.Budget),
		budgetLines:   make(map[string]domain.BudgetLine),
		recurring:     make(map[string]domain.RecurringTransaction),
		pending:       make(map[string]domain.PendingTransaction),
		reminders:     make(map[string]domain.RentReminder),
		Fail:          make(map[string]error),
	}
	for _, t := range []domain.IncomeType{domain.IncomeRent, domain.IncomeDeposit, domain.IncomeLateFee, domain.IncomeOther} {
		id := CategoryID(domain.TransactionIncome, string(t))
		s.categories[id] = domain.Category{CategoryID: id, Name: string(t), Type: domain.TransactionIncome}
	}
	for _, t := range []domain.ExpenseType{
		domain.ExpenseMortgage, domain.ExpenseMaintenance, domain.ExpenseRepairs, domain.ExpenseUtilities,
		domain.ExpenseInsurance, domain.ExpenseTaxes, domain.ExpenseManagement, domain.ExpenseAdvertising,
		domain.ExpenseLegal, domain.ExpenseHOA, domain.ExpenseOther,
	} {
		id := CategoryID(domain.TransactionExpense, string(t))
		s.categories[id] = domain.Category{CategoryID: id, Name: string(t), Type: domain.TransactionExpense}
	}
	return s
}

// CategoryID is the id a seeded category is stored under.
func CategoryID(t domain.TransactionType, name string) string {
	return string(t) + ":" + name
}

// Provider exposes the store through every repository port.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrganizationRepo: s,
		PropertyRepo:     s,
		IncomeRepo:       s,
		ExpenseRepo:      s,
		CategoryRepo:     s,
		BudgetRepo:       s,
		RecurringRepo:    s,
		PendingRepo:      s,
		ReminderRepo:     s,
	}
}

var (
	_ portsrepo.OrganizationRepositoryFacade = (*Store)(nil)
	_ portsrepo.PropertyRepositoryFacade     = (*Store)(nil)
	_ portsrepo.IncomeRepositoryFacade       = (*Store)(nil)
	_ portsrepo.ExpenseRepositoryFacade      = (*Store)(nil)
	_ portsrepo.CategoryReader               = (*Store)(nil)
	_ portsrepo.BudgetRepositoryFacade       = (*Store)(nil)
	_ portsrepo.RecurringRepositoryFacade    = (*Store)(nil)
	_ portsrepo.PendingRepositoryFacade      = (*Store)(nil)
	_ portsrepo.RentReminderRepositoryFacade = (*Store)(nil)
)

func (s *Store) injected(method string) error {
	return s.Fail[method]
}

// Incomes returns a snapshot of every stored income.
func (s *Store) Incomes() []domain.Income {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return values(s.incomes)
}

// Expenses returns a snapshot of every stored expense.
func (s *Store) Expenses() []domain.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return values(s.expenses)
}

// Pendings returns a snapshot of every stored pending transaction.
func (s *Store) Pendings() []domain.PendingTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return values(s.pending)
}

// Reminders returns a snapshot of every stored rent reminder.
func (s *Store) Reminders() []domain.RentReminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return values(s.reminders)
}

func values[K comparable, V any](m map[K]V) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
