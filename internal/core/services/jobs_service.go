package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
)

// jobsService runs the scheduled invocations. No user is attached, so these
// entry points are only reachable from the worker.
type jobsService struct {
	BaseService
	engine        *expansionEngine
	recurringRepo portsrepo.RecurringReader
	reminders     portssvc.RentReminderProcessorSvc
}

// NewJobsService creates the scheduled job entry points.
func NewJobsService(
	recurringRepo portsrepo.RecurringRepositoryFacade,
	pendingRepo portsrepo.PendingRepositoryFacade,
	incomeRepo portsrepo.IncomeReader,
	expenseRepo portsrepo.ExpenseReader,
	reminders portssvc.RentReminderProcessorSvc,
	options ...ServiceOption,
) portssvc.JobsSvc {
	base := newBaseService(options)
	return &jobsService{
		BaseService:   base,
		engine:        newExpansionEngine(base, recurringRepo, pendingRepo, incomeRepo, expenseRepo),
		recurringRepo: recurringRepo,
		reminders:     reminders,
	}
}

var _ portssvc.JobsSvc = (*jobsService)(nil)

func (s *jobsService) ExpandPending(ctx context.Context, organizationID string, today time.Time) (domain.ExpansionResult, error) {
	if organizationID == "" {
		return domain.ExpansionResult{}, apperrors.NewValidationFailedError("organization id is required")
	}
	return s.engine.expandOrganization(ctx, organizationID, today)
}

// ExpandAll runs one pass per organization. An organization whose pass cannot
// start is logged and skipped.
func (s *jobsService) ExpandAll(ctx context.Context, today time.Time) (domain.ExpansionResult, error) {
	var total domain.ExpansionResult
	organizationIDs, err := s.recurringRepo.ListOrganizationsWithActiveRecurring(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organizations with active recurring transactions")
		return total, err
	}
	for _, orgID := range organizationIDs {
		result, err := s.engine.expandOrganization(ctx, orgID, today)
		if err != nil {
			s.LogError(ctx, err, "Skipping organization in expansion run", slog.String("organization_id", orgID))
			continue
		}
		total.Add(result)
	}
	s.LogInfo(ctx, "Expansion run over all organizations finished",
		slog.Int("organizations", len(organizationIDs)),
		slog.Int("created", total.Created),
		slog.Int("skipped", total.Skipped),
		slog.Int("failed", total.Failed))
	return total, nil
}

func (s *jobsService) ProcessDueReminders(ctx context.Context, today time.Time) (domain.ReminderRunResult, error) {
	return s.reminders.ProcessDueReminders(ctx, today)
}
