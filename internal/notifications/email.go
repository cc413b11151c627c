package notifications

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/SscSPs/property_ledger_app/internal/platform/config"
	"gopkg.in/gomail.v2"
)

// mailSender is the part of gomail.Dialer the notifier needs.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier delivers rent reminders over SMTP.
type EmailNotifier struct {
	cfg    config.EmailConfig
	sender mailSender
	logger *slog.Logger
}

// NewEmailNotifier creates an SMTP notifier for cfg.
func NewEmailNotifier(cfg config.EmailConfig, logger *slog.Logger) *EmailNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailNotifier{
		cfg:    cfg,
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

// NotifyRentReminder mails the configured recipients that the month's rent is still unrecorded.
func (n *EmailNotifier) NotifyRentReminder(ctx context.Context, property domain.Property, reminder domain.RentReminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := n.buildMessage(property, reminder)
	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send rent reminder email: %w", err)
	}
	n.logger.InfoContext(ctx, "Rent reminder email sent",
		slog.String("property_id", property.PropertyID),
		slog.String("month", reminder.Month().String()),
	)
	return nil
}

func (n *EmailNotifier) buildMessage(property domain.Property, reminder domain.RentReminder) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(n.cfg.Username, n.cfg.From))
	m.SetHeader("To", n.cfg.To...)
	m.SetHeader("Subject", fmt.Sprintf("Rent for %s not recorded (%s)", property.Name, reminder.Month()))
	m.SetBody("text/html", reminderBody(property, reminder))
	return m
}

func reminderBody(property domain.Property, reminder domain.RentReminder) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>Rent not yet recorded</h2>
    <p>No rent has been recorded for <strong>%s</strong> for %s.</p>
    <p>Expected monthly rent: %s</p>
    <p style="color: #666;">Reminder %d of %d.</p>
</body>
</html>
`,
		html.EscapeString(property.Name),
		reminder.Month(),
		property.MonthlyRent.StringFixed(domain.MoneyScale),
		reminder.ReminderCount+1,
		reminder.MaxReminders,
	)
}
