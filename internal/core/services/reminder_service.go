package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
)

// reminderService creates, closes and sends monthly rent reminders.
type reminderService struct {
	BaseService
	reminderRepo portsrepo.RentReminderRepositoryFacade
	propertyRepo portsrepo.PropertyReader
	incomeRepo   portsrepo.IncomeReader
	notifier     portssvc.RentReminderNotifier
}

// NewRentReminderService creates a new rent reminder service. A nil notifier
// only logs due reminders.
func NewRentReminderService(
	reminderRepo portsrepo.RentReminderRepositoryFacade,
	propertyRepo portsrepo.PropertyReader,
	incomeRepo portsrepo.IncomeReader,
	notifier portssvc.RentReminderNotifier,
	options ...ServiceOption,
) portssvc.RentReminderSvcFacade {
	return &reminderService{
		BaseService:  newBaseService(options),
		reminderRepo: reminderRepo,
		propertyRepo: propertyRepo,
		incomeRepo:   incomeRepo,
		notifier:     notifier,
	}
}

var (
	_ portssvc.RentReminderSvcFacade = (*reminderService)(nil)
	_ rentRecorder                   = (*reminderService)(nil)
)

func (s *reminderService) CreateMonthlyReminders(ctx context.Context, tc domain.TenancyContext, today time.Time) (int, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return 0, err
	}
	properties, err := s.propertyRepo.ListPropertiesByOrganization(ctx, tc.OrganizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list properties for reminders", slog.String("organization_id", tc.OrganizationID))
		return 0, err
	}

	month := domain.MonthKeyOf(today)
	created := 0
	for _, p := range properties {
		reminder, err := domain.NewRentReminder(s.GenerateID(), tc.OrganizationID, p.PropertyID, tc.UserID, month, s.Now())
		if err != nil {
			return created, err
		}
		if err := s.reminderRepo.SaveRentReminder(ctx, reminder); err != nil {
			if isConflict(err) {
				continue
			}
			s.LogError(ctx, err, "Failed to save rent reminder",
				slog.String("property_id", p.PropertyID),
				slog.String("month", month.String()))
			return created, err
		}
		created++
	}

	s.LogInfo(ctx, "Monthly rent reminders created",
		slog.String("organization_id", tc.OrganizationID),
		slog.String("month", month.String()),
		slog.Int("created", created))
	return created, nil
}

func (s *reminderService) ListReminders(ctx context.Context, tc domain.TenancyContext, month domain.MonthKey) ([]domain.RentReminder, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	reminders, err := s.reminderRepo.ListRentRemindersByMonth(ctx, tc.OrganizationID, month)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rent reminders", slog.String("month", month.String()))
		return nil, err
	}
	if reminders == nil {
		return []domain.RentReminder{}, nil
	}
	return reminders, nil
}

func (s *reminderService) MarkRentRecorded(ctx context.Context, tc domain.TenancyContext, propertyID string, month domain.MonthKey) (*domain.RentReminder, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return nil, err
	}
	if _, err := s.propertyRepo.FindPropertyByID(ctx, tc.OrganizationID, propertyID); err != nil {
		return nil, err
	}
	return s.markRecorded(ctx, tc.OrganizationID, propertyID, tc.UserID, month)
}

// markRecorded sets the month's flag, creating the reminder first when the
// month was never bootstrapped.
func (s *reminderService) markRecorded(ctx context.Context, organizationID, propertyID, userID string, month domain.MonthKey) (*domain.RentReminder, error) {
	reminder, err := s.reminderRepo.FindRentReminder(ctx, organizationID, propertyID, month)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		fresh, err := domain.NewRentReminder(s.GenerateID(), organizationID, propertyID, userID, month, s.Now())
		if err != nil {
			return nil, err
		}
		if err := s.reminderRepo.SaveRentReminder(ctx, fresh); err != nil && !isConflict(err) {
			return nil, err
		}
		if reminder, err = s.reminderRepo.FindRentReminder(ctx, organizationID, propertyID, month); err != nil {
			return nil, err
		}
	}

	if reminder.IsRentRecorded {
		return reminder, nil
	}
	now := s.Now()
	if err := s.reminderRepo.MarkRentRecorded(ctx, organizationID, reminder.RentReminderID, userID, now); err != nil {
		return nil, err
	}
	reminder.IsRentRecorded = true
	reminder.Touch(userID, now)
	s.LogInfo(ctx, "Rent marked as recorded",
		slog.String("property_id", propertyID),
		slog.String("month", month.String()))
	return reminder, nil
}

func (s *reminderService) IsRentRecorded(ctx context.Context, tc domain.TenancyContext, propertyID string, month domain.MonthKey) (bool, error) {
	if err := s.Authorize(ctx, tc, domain.RoleMember); err != nil {
		return false, err
	}
	reminder, err := s.reminderRepo.FindRentReminder(ctx, tc.OrganizationID, propertyID, month)
	switch {
	case err == nil && reminder.IsRentRecorded:
		return true, nil
	case err != nil && !isNotFound(err):
		return false, err
	}
	return s.incomeRepo.ExistsRentIncomeInMonth(ctx, tc.OrganizationID, propertyID, month)
}

// ProcessDueReminders sends every reminder due on today across all
// organizations. A reminder whose rent turns out to be in already is closed
// instead of sent. A failed delivery leaves the reminder untouched so the
// next run retries it.
func (s *reminderService) ProcessDueReminders(ctx context.Context, today time.Time) (domain.ReminderRunResult, error) {
	var result domain.ReminderRunResult
	today = domain.DateOf(today)

	due, err := s.reminderRepo.ListDueRentReminders(ctx, today)
	if err != nil {
		s.LogError(ctx, err, "Failed to list due rent reminders")
		return result, err
	}

	for _, r := range due {
		if !r.IsDue(today) {
			continue
		}
		outcome, err := s.processOne(ctx, r, today)
		if err != nil {
			result.Failed++
			s.LogError(ctx, err, "Failed to process rent reminder",
				slog.String("rent_reminder_id", r.RentReminderID),
				slog.String("organization_id", r.OrganizationID))
			continue
		}
		switch outcome {
		case reminderSent:
			result.Sent++
		case reminderClosed:
			result.Recorded++
		}
	}

	s.LogInfo(ctx, "Rent reminder run finished",
		slog.String("today", today.Format(domain.DateLayout)),
		slog.Int("sent", result.Sent),
		slog.Int("recorded", result.Recorded),
		slog.Int("failed", result.Failed))
	return result, nil
}

type reminderOutcome int

const (
	reminderSkipped reminderOutcome = iota
	reminderSent
	reminderClosed
)

func (s *reminderService) processOne(ctx context.Context, r domain.RentReminder, today time.Time) (reminderOutcome, error) {
	recorded, err := s.incomeRepo.ExistsRentIncomeInMonth(ctx, r.OrganizationID, r.PropertyID, r.Month())
	if err != nil {
		return reminderSkipped, err
	}
	if recorded {
		if err := s.reminderRepo.MarkRentRecorded(ctx, r.OrganizationID, r.RentReminderID, r.CreatedBy, s.Now()); err != nil {
			return reminderSkipped, err
		}
		return reminderClosed, nil
	}

	property, err := s.propertyRepo.FindPropertyByID(ctx, r.OrganizationID, r.PropertyID)
	if err != nil {
		return reminderSkipped, err
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyRentReminder(ctx, *property, r); err != nil {
			return reminderSkipped, err
		}
	} else {
		s.GetLogger(ctx).Warn("Rent reminder due but no notifier configured",
			slog.String("property_id", r.PropertyID),
			slog.String("month", r.Month().String()))
	}

	updated, err := s.reminderRepo.UpdateAfterSend(ctx, r.RentReminderID, today)
	if err != nil {
		return reminderSkipped, err
	}
	if !updated {
		// Another run advanced or closed it between the list and the update.
		return reminderSkipped, nil
	}
	return reminderSent, nil
}
