package dto

import (
	"time"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

const monthLayout = "2006-01"

func parseMonth(field, value string) (domain.MonthKey, error) {
	t, err := time.Parse(monthLayout, value)
	if err != nil {
		return domain.MonthKey{}, apperrors.NewValidationFailedError(field + " must be a YYYY-MM month")
	}
	return domain.MonthKeyOf(t), nil
}

// ListRemindersParams selects the month to list; it defaults to the current month.
type ListRemindersParams struct {
	Month *string `form:"month"`
}

// ToMonth resolves the requested month, falling back to the month of today.
func (p ListRemindersParams) ToMonth(today time.Time) (domain.MonthKey, error) {
	if p.Month == nil || *p.Month == "" {
		return domain.MonthKeyOf(today), nil
	}
	return parseMonth("month", *p.Month)
}

type ListRemindersResponse struct {
	Reminders []domain.RentReminder `json:"reminders"`
}

// RecordRentRequest marks one month's rent of a property as recorded.
type RecordRentRequest struct {
	PropertyID string `json:"propertyID" binding:"required"`
	Month      string `json:"month" binding:"required"`
}

func (r RecordRentRequest) ToMonth() (domain.MonthKey, error) {
	return parseMonth("month", r.Month)
}

// BootstrapRemindersResponse reports how many reminders were created for the month.
type BootstrapRemindersResponse struct {
	Month   string `json:"month"`
	Created int    `json:"created"`
}
