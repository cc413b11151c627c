package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PropertyType classifies a real-estate asset.
type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyHouse      PropertyType = "house"
	PropertyCondo      PropertyType = "condo"
	PropertyTownhouse  PropertyType = "townhouse"
	PropertyCommercial PropertyType = "commercial"
)

// IsValid reports whether t is a known property type.
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyApartment, PropertyHouse, PropertyCondo, PropertyTownhouse, PropertyCommercial:
		return true
	}
	return false
}

// Property is a rent-producing asset owned by exactly one organization.
type Property struct {
	PropertyID     string          `json:"propertyID" db:"property_id"`
	OrganizationID string          `json:"organizationID" db:"organization_id"` // immutable after creation
	Name           string          `json:"name" db:"name"`
	Address        string          `json:"address" db:"address"`
	PropertyType   PropertyType    `json:"propertyType" db:"property_type"`
	PurchasePrice  decimal.Decimal `json:"purchasePrice" db:"purchase_price"`
	PurchaseDate   *time.Time      `json:"purchaseDate,omitempty" db:"purchase_date"`
	MonthlyRent    decimal.Decimal `json:"monthlyRent" db:"monthly_rent"`
	Description    *string         `json:"description,omitempty" db:"description"`
	AuditFields
}

// PropertyInput carries the user-editable fields of a property.
type PropertyInput struct {
	Name          string
	Address       string
	PropertyType  PropertyType
	PurchasePrice decimal.Decimal
	PurchaseDate  *time.Time
	MonthlyRent   decimal.Decimal
	Description   *string
}

// Validate checks the input and normalizes amounts and dates in place.
func (in *PropertyInput) Validate() error {
	if err := requireNonEmpty("name", in.Name); err != nil {
		return err
	}
	if !in.PropertyType.IsValid() {
		return validationError("invalid property type: " + string(in.PropertyType))
	}
	var err error
	if in.PurchasePrice, err = NormalizeAmount("purchase price", in.PurchasePrice); err != nil {
		return err
	}
	if in.MonthlyRent, err = NormalizeAmount("monthly rent", in.MonthlyRent); err != nil {
		return err
	}
	if in.PurchaseDate != nil {
		d := DateOf(*in.PurchaseDate)
		in.PurchaseDate = &d
	}
	return nil
}

// NewProperty validates in and builds a property for the context's organization.
func NewProperty(id string, tc TenancyContext, in PropertyInput, now time.Time) (Property, error) {
	if err := requireNonEmpty("organization id", tc.OrganizationID); err != nil {
		return Property{}, err
	}
	if err := in.Validate(); err != nil {
		return Property{}, err
	}
	p := Property{
		PropertyID:     id,
		OrganizationID: tc.OrganizationID,
		AuditFields:    NewAuditFields(tc.UserID, now),
	}
	p.Apply(in)
	return p, nil
}

// Apply copies validated input onto the property. OrganizationID is left untouched.
func (p *Property) Apply(in PropertyInput) {
	p.Name = in.Name
	p.Address = in.Address
	p.PropertyType = in.PropertyType
	p.PurchasePrice = in.PurchasePrice
	p.PurchaseDate = in.PurchaseDate
	p.MonthlyRent = in.MonthlyRent
	p.Description = in.Description
}
