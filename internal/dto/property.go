package dto

import (
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PropertyRequest carries the fields for creating or replacing a property.
type PropertyRequest struct {
	Name          string              `json:"name" binding:"required,max=200"`
	Address       string              `json:"address"`
	PropertyType  domain.PropertyType `json:"propertyType" binding:"required,oneof=apartment house condo townhouse commercial"`
	PurchasePrice decimal.Decimal     `json:"purchasePrice"`
	PurchaseDate  *string             `json:"purchaseDate,omitempty" binding:"omitempty,date"`
	MonthlyRent   decimal.Decimal     `json:"monthlyRent"`
	Description   *string             `json:"description,omitempty"`
}

func (r PropertyRequest) ToInput() (domain.PropertyInput, error) {
	purchaseDate, err := parseOptionalDate("purchaseDate", r.PurchaseDate)
	if err != nil {
		return domain.PropertyInput{}, err
	}
	return domain.PropertyInput{
		Name:          r.Name,
		Address:       r.Address,
		PropertyType:  r.PropertyType,
		PurchasePrice: r.PurchasePrice,
		PurchaseDate:  purchaseDate,
		MonthlyRent:   r.MonthlyRent,
		Description:   r.Description,
	}, nil
}

// ListPropertiesResponse wraps the organization's properties.
type ListPropertiesResponse struct {
	Properties []domain.Property `json:"properties"`
}
