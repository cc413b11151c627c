package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeExpandRecurring  = "ledger:expand_recurring"
	TypeProcessReminders = "ledger:process_reminders"
)

// ExpandRecurringPayload selects the organization to expand. An empty
// OrganizationID expands every organization with an active template. Date is
// an optional YYYY-MM-DD override of today.
type ExpandRecurringPayload struct {
	OrganizationID string `json:"organization_id,omitempty"`
	Date           string `json:"date,omitempty"`
}

func NewExpandRecurringTask(payload ExpandRecurringPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeExpandRecurring, data), nil
}

// ProcessRemindersPayload carries an optional YYYY-MM-DD override of today.
type ProcessRemindersPayload struct {
	Date string `json:"date,omitempty"`
}

func NewProcessRemindersTask(payload ProcessRemindersPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeProcessReminders, data), nil
}
