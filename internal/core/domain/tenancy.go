package domain

// TenancyContext is the (user, organization) pair every core operation runs under.
// It is produced by resolving a user's membership and passed explicitly to services.
type TenancyContext struct {
	UserID         string `json:"userID"`
	OrganizationID string `json:"organizationID"`
	Role           Role   `json:"role"`
}

// NewTenancyContext builds a context from a resolved membership.
func NewTenancyContext(m Membership) TenancyContext {
	return TenancyContext{
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           m.Role,
	}
}

// RequireWriteStamp rejects a write that does not carry both an organization
// and an acting user.
func RequireWriteStamp(organizationID, userID string) error {
	if organizationID == "" {
		return validationError("organization id is required for writes")
	}
	if userID == "" {
		return validationError("user id is required for writes")
	}
	return nil
}
