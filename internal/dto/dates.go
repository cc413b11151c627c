package dto

import (
	"time"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

func parseDate(field, value string) (time.Time, error) {
	d, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationFailedError(field + " must be a YYYY-MM-DD date")
	}
	return d, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	d, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// WindowParams are the start_date / end_date query parameters shared by the
// summary, analysis and report endpoints.
type WindowParams struct {
	StartDate *string `form:"start_date" binding:"omitempty,date"`
	EndDate   *string `form:"end_date" binding:"omitempty,date"`
}

// ToWindow converts the parameters into a validated date window.
func (p WindowParams) ToWindow() (domain.DateWindow, error) {
	from, err := parseOptionalDate("start_date", p.StartDate)
	if err != nil {
		return domain.DateWindow{}, err
	}
	to, err := parseOptionalDate("end_date", p.EndDate)
	if err != nil {
		return domain.DateWindow{}, err
	}
	w := domain.DateWindow{From: from, To: to}
	if err := w.Validate(); err != nil {
		return domain.DateWindow{}, err
	}
	return w, nil
}
