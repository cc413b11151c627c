package notifications

import (
	"context"
	"log/slog"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/internal/platform/config"
)

// NoopNotifier accepts every reminder without delivering it anywhere.
type NoopNotifier struct {
	logger *slog.Logger
}

var _ portssvc.RentReminderNotifier = (*NoopNotifier)(nil)

// NewNoopNotifier creates a notifier that only logs.
func NewNoopNotifier(logger *slog.Logger) *NoopNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopNotifier{logger: logger}
}

// NotifyRentReminder logs the reminder and reports success.
func (n *NoopNotifier) NotifyRentReminder(ctx context.Context, property domain.Property, reminder domain.RentReminder) error {
	n.logger.DebugContext(ctx, "Rent reminder not delivered, no channel configured",
		slog.String("property_id", property.PropertyID),
		slog.String("month", reminder.Month().String()),
		slog.Int("reminder_count", reminder.ReminderCount),
	)
	return nil
}

// New returns the SMTP notifier when email is enabled and the no-op notifier otherwise.
func New(cfg config.EmailConfig, logger *slog.Logger) portssvc.RentReminderNotifier {
	if !cfg.Enabled {
		return NewNoopNotifier(logger)
	}
	return NewEmailNotifier(cfg, logger)
}
