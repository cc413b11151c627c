package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/pkg/util"
	"github.com/hibiken/asynq"
)

type Handler struct {
	jobs   portssvc.JobsSvc
	logger *slog.Logger
	now    func() time.Time
}

func NewHandler(jobs portssvc.JobsSvc, logger *slog.Logger) *Handler {
	return &Handler{
		jobs:   jobs,
		logger: logger,
		now:    time.Now,
	}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeExpandRecurring, h.HandleExpandRecurring)
	mux.HandleFunc(TypeProcessReminders, h.HandleProcessReminders)
}

// RegisterPeriodicTasks schedules the daily expansion and reminder passes.
func RegisterPeriodicTasks(scheduler *asynq.Scheduler, recurringCron, reminderCron string) error {
	if err := util.ValidateCronExpr(recurringCron); err != nil {
		return fmt.Errorf("RECURRING_CRON: %w", err)
	}
	if err := util.ValidateCronExpr(reminderCron); err != nil {
		return fmt.Errorf("REMINDER_CRON: %w", err)
	}

	expand, err := NewExpandRecurringTask(ExpandRecurringPayload{})
	if err != nil {
		return err
	}
	if _, err := scheduler.Register(recurringCron, expand, asynq.Queue("default"), asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("register %s: %w", TypeExpandRecurring, err)
	}

	remind, err := NewProcessRemindersTask(ProcessRemindersPayload{})
	if err != nil {
		return err
	}
	if _, err := scheduler.Register(reminderCron, remind, asynq.Queue("default"), asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("register %s: %w", TypeProcessReminders, err)
	}
	return nil
}

func (h *Handler) HandleExpandRecurring(ctx context.Context, t *asynq.Task) error {
	var payload ExpandRecurringPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	today, err := h.today(payload.Date)
	if err != nil {
		return err
	}

	var result domain.ExpansionResult
	if payload.OrganizationID != "" {
		result, err = h.jobs.ExpandPending(ctx, payload.OrganizationID, today)
	} else {
		result, err = h.jobs.ExpandAll(ctx, today)
	}
	if err != nil {
		h.logger.Error("recurring expansion failed", "org_id", payload.OrganizationID, "error", err)
		return err
	}

	h.logger.Info("recurring expansion completed",
		"org_id", payload.OrganizationID,
		"date", today.Format(domain.DateLayout),
		"created", result.Created,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return nil
}

func (h *Handler) HandleProcessReminders(ctx context.Context, t *asynq.Task) error {
	var payload ProcessRemindersPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	today, err := h.today(payload.Date)
	if err != nil {
		return err
	}

	result, err := h.jobs.ProcessDueReminders(ctx, today)
	if err != nil {
		h.logger.Error("reminder processing failed", "error", err)
		return err
	}

	h.logger.Info("reminder processing completed",
		"date", today.Format(domain.DateLayout),
		"sent", result.Sent,
		"recorded", result.Recorded,
		"failed", result.Failed,
	)
	return nil
}

// today resolves the run date: the payload's override, else the current UTC date.
func (h *Handler) today(override string) (time.Time, error) {
	if override == "" {
		return domain.DateOf(h.now().UTC()), nil
	}
	d, err := domain.ParseDate(override)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", override, asynq.SkipRetry)
	}
	return d, nil
}
