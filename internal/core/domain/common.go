package domain

import (
	"time"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	CreatedBy     string    `json:"createdBy" db:"created_by"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt" db:"last_updated_at"`
	LastUpdatedBy string    `json:"lastUpdatedBy" db:"last_updated_by"` // UserID Reference
}

// NewAuditFields stamps creation and update fields with the same user and instant.
func NewAuditFields(userID string, now time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// Touch records an update by userID at now.
func (a *AuditFields) Touch(userID string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
}

// MoneyScale is the number of fractional digits kept for monetary amounts.
const MoneyScale = 2

// NormalizeAmount rejects negative amounts and rounds to MoneyScale.
func NormalizeAmount(field string, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, validationError(field + " must not be negative")
	}
	return amount.Round(MoneyScale), nil
}

// Percentage returns part / whole * 100 rounded to two places, or zero when whole is zero.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2)
}

func validationError(msg string) error {
	return apperrors.NewValidationFailedError(msg)
}

func requireNonEmpty(field, value string) error {
	if value == "" {
		return validationError(field + " is required")
	}
	return nil
}
