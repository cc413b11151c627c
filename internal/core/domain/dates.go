package domain

import "time"

// DateLayout is the ISO-8601 calendar date layout used on the wire and in the store.
const DateLayout = "2006-01-02"

// DateOf truncates t to the calendar date it falls on, expressed as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDate builds a UTC-midnight calendar date.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO-8601 calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonthsClamped moves d by n calendar months, clamping the day to the
// last day of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonthsClamped(d time.Time, n int) time.Time {
	total := int(d.Month()) - 1 + n
	year := d.Year() + total/12
	monthIdx := total % 12
	if monthIdx < 0 {
		monthIdx += 12
		year--
	}
	month := time.Month(monthIdx + 1)
	day := d.Day()
	if last := DaysIn(year, month); day > last {
		day = last
	}
	return NewDate(year, month, day)
}

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthKeyOf returns the calendar month t falls in.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// Window returns the first and last calendar day of the month.
func (k MonthKey) Window() (time.Time, time.Time) {
	first := NewDate(k.Year, k.Month, 1)
	return first, NewDate(k.Year, k.Month, DaysIn(k.Year, k.Month))
}

// Contains reports whether t falls in the month.
func (k MonthKey) Contains(t time.Time) bool {
	return t.Year() == k.Year && t.Month() == k.Month
}

// String renders the key as YYYY-MM.
func (k MonthKey) String() string {
	return NewDate(k.Year, k.Month, 1).Format("2006-01")
}

// monthsBetween counts whole calendar-month steps from a to b, ignoring days.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// DateWindow is an inclusive range of calendar dates. A nil bound is
// unbounded in that direction.
type DateWindow struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether the calendar date of t lies within the window.
func (w DateWindow) Contains(t time.Time) bool {
	d := DateOf(t)
	if w.From != nil && d.Before(DateOf(*w.From)) {
		return false
	}
	if w.To != nil && d.After(DateOf(*w.To)) {
		return false
	}
	return true
}

// Validate rejects windows whose end precedes their start.
func (w DateWindow) Validate() error {
	if w.From != nil && w.To != nil && DateOf(*w.To).Before(DateOf(*w.From)) {
		return validationError("end date must not be before start date")
	}
	return nil
}

// IsFullCalendarYear reports whether the window spans exactly Jan 1 – Dec 31 of one year.
func (w DateWindow) IsFullCalendarYear() bool {
	if w.From == nil || w.To == nil {
		return false
	}
	from, to := DateOf(*w.From), DateOf(*w.To)
	return from.Year() == to.Year() &&
		from.Month() == time.January && from.Day() == 1 &&
		to.Month() == time.December && to.Day() == 31
}
