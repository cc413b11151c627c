package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	OrganizationRepo OrganizationRepositoryFacade
	PropertyRepo     PropertyRepositoryFacade
	IncomeRepo       IncomeRepositoryFacade
	ExpenseRepo      ExpenseRepositoryFacade
	CategoryRepo     CategoryReader
	BudgetRepo       BudgetRepositoryFacade
	RecurringRepo    RecurringRepositoryFacade
	PendingRepo      PendingRepositoryFacade
	ReminderRepo     RentReminderRepositoryFacade
}
