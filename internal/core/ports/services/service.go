package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers and the worker.
type ServiceContainer struct {
	Tenancy   TenancySvcFacade
	Property  PropertySvcFacade
	Ledger    LedgerSvcFacade
	Category  CategorySvc
	Budget    BudgetSvcFacade
	Recurring RecurringSvcFacade
	Pending   PendingSvcFacade
	Reminder  RentReminderSvcFacade
	Summary   SummarySvc
	Reporting ReportingSvc
	Jobs      JobsSvc
}
