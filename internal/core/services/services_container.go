package services

import (
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// options are applied to every service after the organization authorizer.
func NewServiceContainer(repos portsrepo.RepositoryProvider, notifier portssvc.RentReminderNotifier, options ...ServiceOption) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	// Initialize tenancy first since every other service authorizes against it
	container.Tenancy = NewTenancyService(repos.OrganizationRepo, options...)

	opts := append([]ServiceOption{WithOrganizationAuthorizer(container.Tenancy)}, options...)

	container.Property = NewPropertyService(repos.PropertyRepo, opts...)
	container.Category = NewCategoryService(repos.CategoryRepo, opts...)
	container.Reminder = NewRentReminderService(repos.ReminderRepo, repos.PropertyRepo, repos.IncomeRepo, notifier, opts...)
	container.Ledger = NewLedgerService(repos.IncomeRepo, repos.ExpenseRepo, repos.PropertyRepo, container.Reminder, opts...)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.PropertyRepo, repos.CategoryRepo, repos.ExpenseRepo, opts...)
	container.Recurring = NewRecurringService(repos.RecurringRepo, repos.PendingRepo, repos.IncomeRepo, repos.ExpenseRepo, repos.PropertyRepo, opts...)
	container.Pending = NewPendingService(repos.PendingRepo, repos.IncomeRepo, repos.ExpenseRepo, container.Reminder, opts...)
	container.Summary = NewSummaryService(repos.PropertyRepo, repos.IncomeRepo, repos.ExpenseRepo, opts...)
	container.Reporting = NewReportingService(repos.PropertyRepo, repos.IncomeRepo, repos.ExpenseRepo, opts...)
	container.Jobs = NewJobsService(repos.RecurringRepo, repos.PendingRepo, repos.IncomeRepo, repos.ExpenseRepo, container.Reminder, opts...)

	return container
}
