package domain

import "time"

const (
	// ReminderAnchorDay is the day of month a month's rent is expected by.
	ReminderAnchorDay = 5
	// ReminderCadenceDays is the gap between consecutive reminders.
	ReminderCadenceDays = 5
	// DefaultMaxReminders caps the reminders sent for one month.
	DefaultMaxReminders = 6
)

// RentReminder tracks whether one month's rent for a property has been
// recorded and how often the owner has been reminded. At most one exists per
// (property, year, month).
type RentReminder struct {
	RentReminderID   string     `json:"rentReminderID" db:"rent_reminder_id"`
	OrganizationID   string     `json:"organizationID" db:"organization_id"`
	PropertyID       string     `json:"propertyID" db:"property_id"`
	ReminderMonth    int        `json:"reminderMonth" db:"reminder_month"`
	ReminderYear     int        `json:"reminderYear" db:"reminder_year"`
	ReminderDate     time.Time  `json:"reminderDate" db:"reminder_date"`
	LastSentDate     *time.Time `json:"lastSentDate,omitempty" db:"last_sent_date"`
	NextReminderDate time.Time  `json:"nextReminderDate" db:"next_reminder_date"`
	IsRentRecorded   bool       `json:"isRentRecorded" db:"is_rent_recorded"`
	ReminderCount    int        `json:"reminderCount" db:"reminder_count"`
	MaxReminders     int        `json:"maxReminders" db:"max_reminders"`
	AuditFields
}

// NewRentReminder builds the reminder for (year, month): anchored on the 5th,
// first due five days later.
func NewRentReminder(id, organizationID, propertyID, userID string, month MonthKey, now time.Time) (RentReminder, error) {
	if err := requireNonEmpty("organization id", organizationID); err != nil {
		return RentReminder{}, err
	}
	if err := requireNonEmpty("property id", propertyID); err != nil {
		return RentReminder{}, err
	}
	if month.Month < time.January || month.Month > time.December {
		return RentReminder{}, validationError("invalid reminder month")
	}
	anchor := NewDate(month.Year, month.Month, ReminderAnchorDay)
	return RentReminder{
		RentReminderID:   id,
		OrganizationID:   organizationID,
		PropertyID:       propertyID,
		ReminderMonth:    int(month.Month),
		ReminderYear:     month.Year,
		ReminderDate:     anchor,
		NextReminderDate: anchor.AddDate(0, 0, ReminderCadenceDays),
		MaxReminders:     DefaultMaxReminders,
		AuditFields:      NewAuditFields(userID, now),
	}, nil
}

// Month returns the month the reminder covers.
func (r RentReminder) Month() MonthKey {
	return MonthKey{Year: r.ReminderYear, Month: time.Month(r.ReminderMonth)}
}

// IsDue reports whether a reminder should be sent on today.
func (r RentReminder) IsDue(today time.Time) bool {
	return !DateOf(r.NextReminderDate).After(DateOf(today)) &&
		!r.IsRentRecorded &&
		r.ReminderCount < r.MaxReminders
}

// RecordSend advances the reminder after a successful send on today.
func (r *RentReminder) RecordSend(today time.Time) {
	today = DateOf(today)
	r.LastSentDate = &today
	r.NextReminderDate = today.AddDate(0, 0, ReminderCadenceDays)
	if r.ReminderCount < r.MaxReminders {
		r.ReminderCount++
	}
}
