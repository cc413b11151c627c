package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
)

// expansionEngine materializes pending transactions from active templates. It
// holds no state between passes: every guard is evaluated against fresh reads,
// so overlapping passes over the same organization converge.
type expansionEngine struct {
	BaseService
	recurringRepo portsrepo.RecurringRepositoryFacade
	pendingRepo   portsrepo.PendingRepositoryFacade
	incomeRepo    portsrepo.IncomeReader
	expenseRepo   portsrepo.ExpenseReader
}

// expandOrganization runs one pass over the organization's active templates.
// A failing template is logged and counted; the pass continues with the rest.
func (e *expansionEngine) expandOrganization(ctx context.Context, organizationID string, today time.Time) (domain.ExpansionResult, error) {
	var result domain.ExpansionResult
	today = domain.DateOf(today)

	templates, err := e.recurringRepo.ListActiveRecurringByOrganization(ctx, organizationID)
	if err != nil {
		e.LogError(ctx, err, "Failed to list active recurring transactions", slog.String("organization_id", organizationID))
		return result, err
	}

	for _, r := range templates {
		created, err := e.expandOne(ctx, r, today)
		switch {
		case err != nil:
			result.Failed++
			e.LogError(ctx, err, "Failed to expand recurring transaction",
				slog.String("organization_id", organizationID),
				slog.String("recurring_transaction_id", r.RecurringTransactionID))
		case created:
			result.Created++
		default:
			result.Skipped++
		}
	}

	e.LogInfo(ctx, "Recurring expansion finished",
		slog.String("organization_id", organizationID),
		slog.String("today", today.Format(domain.DateLayout)),
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed))
	return result, nil
}

// expandOne materializes r's pending for today's period unless any guard says
// it already exists. It reports whether a row was inserted.
func (e *expansionEngine) expandOne(ctx context.Context, r domain.RecurringTransaction, today time.Time) (bool, error) {
	due, running := r.DueOn(today)
	if !running {
		return false, nil
	}
	month := domain.MonthKeyOf(due)

	if r.GeneratedIn(month) {
		return false, nil
	}

	exists, err := e.pendingRepo.ExistsPendingForMonth(ctx, r.OrganizationID, r.RecurringTransactionID, month)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	key := domain.MatchKey{
		OrganizationID: r.OrganizationID,
		PropertyID:     r.PropertyID,
		Amount:         r.Amount,
		Date:           due,
	}
	var realized bool
	if r.TransactionType == domain.TransactionIncome {
		realized, err = e.incomeRepo.ExistsMatchingIncome(ctx, key)
	} else {
		realized, err = e.expenseRepo.ExistsMatchingExpense(ctx, key)
	}
	if err != nil {
		return false, err
	}
	if realized {
		return false, nil
	}

	pending := domain.NewPendingFromRecurring(e.GenerateID(), r, due, e.Now())
	if err := e.pendingRepo.SavePending(ctx, pending); err != nil {
		if isConflict(err) {
			// A concurrent pass inserted the same month first.
			return false, nil
		}
		return false, err
	}

	if err := e.recurringRepo.SetLastGeneratedOn(ctx, r.OrganizationID, r.RecurringTransactionID, due); err != nil {
		e.GetLogger(ctx).Warn("Failed to record last generated date",
			slog.String("recurring_transaction_id", r.RecurringTransactionID),
			slog.String("error", err.Error()))
	}
	e.LogDebug(ctx, "Pending transaction materialized",
		slog.String("recurring_transaction_id", r.RecurringTransactionID),
		slog.String("pending_transaction_id", pending.PendingTransactionID),
		slog.String("transaction_date", due.Format(domain.DateLayout)))
	return true, nil
}

// recurringService manages templates and runs interactive expansion passes.
type recurringService struct {
	BaseService
	engine        *expansionEngine
	recurringRepo portsrepo.RecurringRepositoryFacade
	propertyRepo  portsrepo.PropertyReader
}

// NewRecurringService creates a new recurring transaction service.
func NewRecurringService(
	recurringRepo portsrepo.RecurringRepositoryFacade,
	pendingRepo portsrepo.PendingRepositoryFacade,
	incomeRepo portsrepo.IncomeReader,
	expenseRepo portsrepo.ExpenseReader,
	propertyRepo portsrepo.PropertyReader,
	options ...ServiceOption,
) portssvc.RecurringSvcFacade {
	base := newBaseService(options)
	return &recurringService{
		BaseService:   base,
		engine:        newExpansionEngine(base, recurringRepo, pendingRepo, incomeRepo, expenseRepo),
		recurringRepo: recurringRepo,
		propertyRepo:  propertyRepo,
	}
}

func newExpansionEngine(
	base BaseService,
	recurringRepo portsrepo.RecurringRepositoryFacade,
	pendingRepo portsrepo.PendingRepositoryFacade,
	incomeRepo portsrepo.IncomeReader,
	expenseRepo portsrepo.ExpenseReader,
) *expansionEngine {
	return &expansionEngine{
		BaseService:   base,
		recurringRepo: recurringRepo,
		pendingRepo:   pendingRepo,
		incomeRepo:    incomeRepo,
		expenseRepo:   expenseRepo,
	}
}

var _ portssvc.RecurringSvcFacade = (*recurringService)(nil)

func (s *recurringService) CreateRecurring(ctx context.Context, tc domain.TenancyContext, in domain.RecurringInput) (*domain.RecurringTransaction, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	r, err := domain.NewRecurringTransaction(s.GenerateID(), tc, in, s.Now())
	if err != nil {
		return nil, err
	}
	if _, err := s.propertyRepo.FindPropertyByID(ctx, tc.OrganizationID, r.PropertyID); err != nil {
		return nil, err
	}
	if err := s.recurringRepo.SaveRecurring(ctx, r); err != nil {
		s.LogError(ctx, err, "Failed to save recurring transaction", slog.String("property_id", r.PropertyID))
		return nil, err
	}
	s.LogInfo(ctx, "Recurring transaction created",
		slog.String("recurring_transaction_id", r.RecurringTransactionID),
		slog.String("interval", string(r.Interval)))
	return &r, nil
}

func (s *recurringService) GetRecurring(ctx context.Context, tc domain.TenancyContext, recurringID string) (*domain.RecurringTransaction, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.recurringRepo.FindRecurringByID(ctx, tc.OrganizationID, recurringID)
}

func (s *recurringService) ListRecurring(ctx context.Context, tc domain.TenancyContext, activeOnly bool) ([]domain.RecurringTransaction, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	var (
		templates []domain.RecurringTransaction
		err       error
	)
	if activeOnly {
		templates, err = s.recurringRepo.ListActiveRecurringByOrganization(ctx, tc.OrganizationID)
	} else {
		templates, err = s.recurringRepo.ListRecurringByOrganization(ctx, tc.OrganizationID)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list recurring transactions", slog.String("organization_id", tc.OrganizationID))
		return nil, err
	}
	if templates == nil {
		return []domain.RecurringTransaction{}, nil
	}
	return templates, nil
}

func (s *recurringService) UpdateRecurring(ctx context.Context, tc domain.TenancyContext, recurringID string, in domain.RecurringInput) (*domain.RecurringTransaction, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	r, err := s.recurringRepo.FindRecurringByID(ctx, tc.OrganizationID, recurringID)
	if err != nil {
		return nil, err
	}
	if in.PropertyID != r.PropertyID {
		if _, err := s.propertyRepo.FindPropertyByID(ctx, tc.OrganizationID, in.PropertyID); err != nil {
			return nil, err
		}
	}
	r.Apply(in)
	r.Touch(tc.UserID, s.Now())
	if err := s.recurringRepo.UpdateRecurring(ctx, *r); err != nil {
		s.LogError(ctx, err, "Failed to update recurring transaction", slog.String("recurring_transaction_id", recurringID))
		return nil, err
	}
	return r, nil
}

func (s *recurringService) setActive(ctx context.Context, tc domain.TenancyContext, recurringID string, active bool) error {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return err
	}
	if err := s.recurringRepo.SetRecurringActive(ctx, tc.OrganizationID, recurringID, active, tc.UserID, s.Now()); err != nil {
		if logWorthy(err) {
			s.LogError(ctx, err, "Failed to change recurring transaction state",
				slog.String("recurring_transaction_id", recurringID),
				slog.Bool("active", active))
		}
		return err
	}
	s.LogInfo(ctx, "Recurring transaction state changed",
		slog.String("recurring_transaction_id", recurringID),
		slog.Bool("active", active))
	return nil
}

func (s *recurringService) DeactivateRecurring(ctx context.Context, tc domain.TenancyContext, recurringID string) error {
	return s.setActive(ctx, tc, recurringID, false)
}

func (s *recurringService) ReactivateRecurring(ctx context.Context, tc domain.TenancyContext, recurringID string) error {
	return s.setActive(ctx, tc, recurringID, true)
}

func (s *recurringService) DeleteRecurring(ctx context.Context, tc domain.TenancyContext, recurringID string) error {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return err
	}
	if err := s.recurringRepo.DeleteRecurring(ctx, tc.OrganizationID, recurringID); err != nil {
		if logWorthy(err) {
			s.LogError(ctx, err, "Failed to delete recurring transaction", slog.String("recurring_transaction_id", recurringID))
		}
		return err
	}
	return nil
}

func (s *recurringService) ExpandPending(ctx context.Context, tc domain.TenancyContext, today time.Time) (domain.ExpansionResult, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return domain.ExpansionResult{}, err
	}
	return s.engine.expandOrganization(ctx, tc.OrganizationID, today)
}
