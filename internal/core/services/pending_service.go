package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
)

// pendingService turns pending transactions into realized ones.
type pendingService struct {
	BaseService
	pendingRepo  portsrepo.PendingRepositoryFacade
	incomeRepo   portsrepo.IncomeRepositoryFacade
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	rentRecorder rentRecorder
}

// NewPendingService creates the pending confirmation workflow. When reminders
// is non-nil, confirming a rent income also marks the month's rent as recorded.
func NewPendingService(
	pendingRepo portsrepo.PendingRepositoryFacade,
	incomeRepo portsrepo.IncomeRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	reminders portssvc.RentReminderSvcFacade,
	options ...ServiceOption,
) portssvc.PendingSvcFacade {
	svc := &pendingService{
		BaseService: newBaseService(options),
		pendingRepo: pendingRepo,
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
	}
	if r, ok := reminders.(rentRecorder); ok {
		svc.rentRecorder = r
	}
	return svc
}

var _ portssvc.PendingSvcFacade = (*pendingService)(nil)

func (s *pendingService) ListPending(ctx context.Context, tc domain.TenancyContext, transactionType *domain.TransactionType) ([]domain.PendingTransaction, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	if transactionType != nil && !transactionType.IsValid() {
		return nil, apperrors.NewValidationFailedError("invalid transaction type: " + string(*transactionType))
	}
	pendings, err := s.pendingRepo.ListPending(ctx, tc.OrganizationID, transactionType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending transactions", slog.String("organization_id", tc.OrganizationID))
		return nil, err
	}
	if pendings == nil {
		return []domain.PendingTransaction{}, nil
	}
	return pendings, nil
}

func (s *pendingService) GetPending(ctx context.Context, tc domain.TenancyContext, pendingID string) (*domain.PendingTransaction, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.pendingRepo.FindPendingByID(ctx, tc.OrganizationID, pendingID)
}

func (s *pendingService) EditPending(ctx context.Context, tc domain.TenancyContext, pendingID string, patch domain.PendingPatch) (*domain.PendingTransaction, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	pending, err := s.pendingRepo.FindPendingByID(ctx, tc.OrganizationID, pendingID)
	if err != nil {
		return nil, err
	}
	if err := pending.ApplyPatch(patch, tc.UserID, s.Now()); err != nil {
		return nil, err
	}
	if err := s.pendingRepo.UpdatePending(ctx, *pending); err != nil {
		s.LogError(ctx, err, "Failed to update pending transaction", slog.String("pending_transaction_id", pendingID))
		return nil, err
	}
	return pending, nil
}

func (s *pendingService) DiscardPending(ctx context.Context, tc domain.TenancyContext, pendingID string) error {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return err
	}
	if err := s.pendingRepo.DeletePending(ctx, tc.OrganizationID, pendingID); err != nil {
		if logWorthy(err) {
			s.LogError(ctx, err, "Failed to discard pending transaction", slog.String("pending_transaction_id", pendingID))
		}
		return err
	}
	s.LogInfo(ctx, "Pending transaction discarded", slog.String("pending_transaction_id", pendingID))
	return nil
}

// ConfirmPending inserts the realized row, then deletes the pending. A
// realized row that already matches the pending means an earlier confirm got
// as far as the insert, so only the delete is repeated.
func (s *pendingService) ConfirmPending(ctx context.Context, tc domain.TenancyContext, pendingID string) (*portssvc.ConfirmResult, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	pending, err := s.pendingRepo.FindPendingByID(ctx, tc.OrganizationID, pendingID)
	if err != nil {
		return nil, err
	}

	result := &portssvc.ConfirmResult{TransactionType: pending.TransactionType}
	switch pending.TransactionType {
	case domain.TransactionIncome:
		err = s.realizeIncome(ctx, tc, *pending, result)
	case domain.TransactionExpense:
		err = s.realizeExpense(ctx, tc, *pending, result)
	default:
		err = apperrors.NewValidationFailedError("invalid transaction type: " + string(pending.TransactionType))
	}
	if err != nil {
		return nil, err
	}

	if err := s.pendingRepo.DeletePending(ctx, tc.OrganizationID, pendingID); err != nil && !isNotFound(err) {
		s.LogError(ctx, err, "Realized row saved but pending delete failed",
			slog.String("pending_transaction_id", pendingID))
		return nil, err
	}

	if pending.IsRent() && s.rentRecorder != nil {
		month := domain.MonthKeyOf(pending.TransactionDate)
		if _, err := s.rentRecorder.markRecorded(ctx, tc.OrganizationID, pending.PropertyID, tc.UserID, month); err != nil {
			s.LogError(ctx, err, "Failed to mark rent recorded after confirmation",
				slog.String("property_id", pending.PropertyID),
				slog.String("month", month.String()))
		}
	}

	s.LogInfo(ctx, "Pending transaction confirmed",
		slog.String("pending_transaction_id", pendingID),
		slog.Bool("already_realized", result.AlreadyRealized))
	return result, nil
}

func (s *pendingService) realizeIncome(ctx context.Context, tc domain.TenancyContext, pending domain.PendingTransaction, result *portssvc.ConfirmResult) error {
	exists, err := s.incomeRepo.ExistsMatchingIncome(ctx, pending.MatchKey())
	if err != nil {
		return err
	}
	if exists {
		result.AlreadyRealized = true
		return nil
	}
	income, err := domain.NewIncome(s.GenerateID(), tc, pending.IncomeInput(), s.Now())
	if err != nil {
		return err
	}
	if err := s.incomeRepo.SaveIncome(ctx, income); err != nil {
		s.LogError(ctx, err, "Failed to save confirmed income", slog.String("pending_transaction_id", pending.PendingTransactionID))
		return err
	}
	result.Income = &income
	return nil
}

func (s *pendingService) realizeExpense(ctx context.Context, tc domain.TenancyContext, pending domain.PendingTransaction, result *portssvc.ConfirmResult) error {
	exists, err := s.expenseRepo.ExistsMatchingExpense(ctx, pending.MatchKey())
	if err != nil {
		return err
	}
	if exists {
		result.AlreadyRealized = true
		return nil
	}
	expense, err := domain.NewExpense(s.GenerateID(), tc, pending.ExpenseInput(), s.Now())
	if err != nil {
		return err
	}
	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save confirmed expense", slog.String("pending_transaction_id", pending.PendingTransactionID))
		return err
	}
	result.Expense = &expense
	return nil
}
