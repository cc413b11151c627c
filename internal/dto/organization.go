package dto

import "github.com/SscSPs/property_ledger_app/internal/core/domain"

// CreateOrganizationRequest defines the data needed to create a new organization.
type CreateOrganizationRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Description *string `json:"description,omitempty"`
}

// AddMemberRequest defines the data needed to add a user to an organization.
type AddMemberRequest struct {
	UserID string      `json:"userID" binding:"required"`
	Role   domain.Role `json:"role" binding:"required,oneof=owner admin member"`
}

// ListOrganizationsResponse lists the caller's organizations with their role in each.
type ListOrganizationsResponse struct {
	Organizations []domain.OrganizationMembership `json:"organizations"`
}
