package notifications

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/SscSPs/property_ledger_app/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func fixtures(t *testing.T) (domain.Property, domain.RentReminder) {
	t.Helper()
	property := domain.Property{
		PropertyID:  "prop-1",
		Name:        "Maple Court",
		MonthlyRent: decimal.RequireFromString("1500"),
	}
	reminder, err := domain.NewRentReminder("rem-1", "org-1", "prop-1", "user-1", domain.MonthKey{Year: 2024, Month: 5}, domain.NewDate(2024, 5, 1))
	require.NoError(t, err)
	return property, reminder
}

func TestNew_SelectsChannel(t *testing.T) {
	assert.IsType(t, &NoopNotifier{}, New(config.EmailConfig{}, testLogger()))
	assert.IsType(t, &EmailNotifier{}, New(config.EmailConfig{Enabled: true, Host: "smtp.example.com", Port: 587}, testLogger()))
}

func TestNoopNotifier_AlwaysSucceeds(t *testing.T) {
	property, reminder := fixtures(t)
	assert.NoError(t, NewNoopNotifier(nil).NotifyRentReminder(context.Background(), property, reminder))
}

func TestEmailNotifier_SendsToRecipients(t *testing.T) {
	property, reminder := fixtures(t)
	sender := &fakeSender{}
	n := NewEmailNotifier(config.EmailConfig{
		Enabled:  true,
		Username: "ledger@example.com",
		From:     "Property Ledger",
		To:       []string{"owner@example.com", "partner@example.com"},
	}, testLogger())
	n.sender = sender

	require.NoError(t, n.NotifyRentReminder(context.Background(), property, reminder))
	require.Len(t, sender.sent, 1)

	m := sender.sent[0]
	assert.Equal(t, []string{"owner@example.com", "partner@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Rent for Maple Court not recorded (2024-05)"}, m.GetHeader("Subject"))
}

func TestEmailNotifier_PropagatesSendFailure(t *testing.T) {
	property, reminder := fixtures(t)
	n := NewEmailNotifier(config.EmailConfig{Enabled: true, To: []string{"owner@example.com"}}, testLogger())
	n.sender = &fakeSender{err: errors.New("connection refused")}

	err := n.NotifyRentReminder(context.Background(), property, reminder)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestReminderBody_EscapesPropertyName(t *testing.T) {
	property, reminder := fixtures(t)
	property.Name = "<b>Oak</b>"

	body := reminderBody(property, reminder)
	assert.Contains(t, body, "&lt;b&gt;Oak&lt;/b&gt;")
	assert.Contains(t, body, "1500.00")
	assert.Contains(t, body, "Reminder 1 of 6")
}
