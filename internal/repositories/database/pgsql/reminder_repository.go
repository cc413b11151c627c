package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRentReminderRepository struct {
	BaseRepository
}

// newPgxRentReminderRepository creates a new repository for rent reminders.
func newPgxRentReminderRepository(pool *pgxpool.Pool) *PgxRentReminderRepository {
	return &PgxRentReminderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RentReminderRepositoryFacade = (*PgxRentReminderRepository)(nil)

const reminderColumns = `
	rr.rent_reminder_id, rr.organization_id, rr.property_id, rr.reminder_month, rr.reminder_year,
	rr.reminder_date, rr.last_sent_date, rr.next_reminder_date, rr.is_rent_recorded,
	rr.reminder_count, rr.max_reminders,
	rr.created_at, rr.created_by, rr.last_updated_at, rr.last_updated_by
`

var FULL_RENT_REMINDER_SELECT_QUERY = `SELECT` + reminderColumns + `FROM rent_reminders rr
`

func (r *PgxRentReminderRepository) getReminders(ctx context.Context, query string, args ...any) ([]domain.RentReminder, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query rent reminders")
	}
	reminders, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.RentReminder])
	if err != nil {
		return nil, mapPgError(err, "failed to collect rent reminder rows")
	}
	return reminders, nil
}

func (r *PgxRentReminderRepository) SaveRentReminder(ctx context.Context, reminder domain.RentReminder) error {
	if err := domain.RequireWriteStamp(reminder.OrganizationID, reminder.CreatedBy); err != nil {
		return err
	}
	query := `
		INSERT INTO rent_reminders (
			rent_reminder_id, organization_id, property_id, reminder_month, reminder_year,
			reminder_date, last_sent_date, next_reminder_date, is_rent_recorded,
			reminder_count, max_reminders,
			created_at, created_by, last_updated_at, last_updated_by
		)
		SELECT $1, p.organization_id, p.property_id, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		FROM properties p
		WHERE p.organization_id = $2 AND p.property_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query,
		reminder.RentReminderID,
		reminder.OrganizationID,
		reminder.PropertyID,
		reminder.ReminderMonth,
		reminder.ReminderYear,
		reminder.ReminderDate,
		reminder.LastSentDate,
		reminder.NextReminderDate,
		reminder.IsRentRecorded,
		reminder.ReminderCount,
		reminder.MaxReminders,
		reminder.CreatedAt,
		reminder.CreatedBy,
		reminder.LastUpdatedAt,
		reminder.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save rent reminder for "+reminder.Month().String())
	}
	return requireProperty(tag, reminder.PropertyID)
}

func (r *PgxRentReminderRepository) FindRentReminder(ctx context.Context, organizationID, propertyID string, month domain.MonthKey) (*domain.RentReminder, error) {
	reminders, err := r.getReminders(ctx,
		FULL_RENT_REMINDER_SELECT_QUERY+`WHERE rr.organization_id = $1 AND rr.property_id = $2 AND rr.reminder_year = $3 AND rr.reminder_month = $4`,
		organizationID, propertyID, month.Year, int(month.Month))
	if err != nil {
		return nil, err
	}
	if len(reminders) == 0 {
		return nil, mapPgError(pgx.ErrNoRows, "rent reminder not found")
	}
	return &reminders[0], nil
}

func (r *PgxRentReminderRepository) ListRentRemindersByMonth(ctx context.Context, organizationID string, month domain.MonthKey) ([]domain.RentReminder, error) {
	return r.getReminders(ctx,
		FULL_RENT_REMINDER_SELECT_QUERY+`WHERE rr.organization_id = $1 AND rr.reminder_year = $2 AND rr.reminder_month = $3 ORDER BY rr.property_id`,
		organizationID, month.Year, int(month.Month))
}

// ListDueRentReminders reads through the get_due_reminders stored function.
func (r *PgxRentReminderRepository) ListDueRentReminders(ctx context.Context, today time.Time) ([]domain.RentReminder, error) {
	return r.getReminders(ctx, `SELECT`+reminderColumns+`FROM get_due_reminders($1) rr`, domain.DateOf(today))
}

// UpdateAfterSend applies a send atomically; the guard repeats the due
// conditions so that concurrent or repeated runs cannot exceed the ceiling.
func (r *PgxRentReminderRepository) UpdateAfterSend(ctx context.Context, reminderID string, today time.Time) (bool, error) {
	today = domain.DateOf(today)
	query := `
		UPDATE rent_reminders
		SET last_sent_date = $1, next_reminder_date = $2, reminder_count = reminder_count + 1, last_updated_at = NOW()
		WHERE rent_reminder_id = $3
		  AND next_reminder_date <= $1
		  AND NOT is_rent_recorded
		  AND reminder_count < max_reminders;
	`
	tag, err := r.Pool.Exec(ctx, query, today, today.AddDate(0, 0, domain.ReminderCadenceDays), reminderID)
	if err != nil {
		return false, mapPgError(err, "failed to record send of rent reminder "+reminderID)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxRentReminderRepository) MarkRentRecorded(ctx context.Context, organizationID, reminderID, userID string, now time.Time) error {
	if err := domain.RequireWriteStamp(organizationID, userID); err != nil {
		return err
	}
	query := `
		UPDATE rent_reminders
		SET is_rent_recorded = TRUE, last_updated_at = $1, last_updated_by = $2
		WHERE organization_id = $3 AND rent_reminder_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, now, userID, organizationID, reminderID)
	if err != nil {
		return mapPgError(err, "failed to mark rent recorded on reminder "+reminderID)
	}
	return requireAffected(tag, "rent reminder "+reminderID)
}
