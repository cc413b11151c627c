package domain

import "time"

// Organization is the tenancy boundary that owns properties and their ledgers.
type Organization struct {
	OrganizationID string    `json:"organizationID" db:"organization_id"`
	Name           string    `json:"name" db:"name"`
	Description    *string   `json:"description,omitempty" db:"description"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	CreatedBy      string    `json:"createdBy" db:"created_by"`
}

// Role defines the possible roles a user can have within an organization.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

var roleRank = map[Role]int{
	RoleMember: 1,
	RoleAdmin:  2,
	RoleOwner:  3,
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// Satisfies reports whether r grants at least the permissions of required.
func (r Role) Satisfies(required Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	return have >= roleRank[required]
}

// Membership represents a user's role in an organization.
type Membership struct {
	UserID         string    `json:"userID" db:"user_id"`
	OrganizationID string    `json:"organizationID" db:"organization_id"`
	Role           Role      `json:"role" db:"role"`
	JoinedAt       time.Time `json:"joinedAt" db:"joined_at"`
}

// OrganizationMembership pairs an organization with the caller's role in it.
type OrganizationMembership struct {
	Organization Organization `json:"organization"`
	Role         Role         `json:"role"`
	JoinedAt     time.Time    `json:"joinedAt"`
}

// NewOrganization validates and builds an organization created by userID.
func NewOrganization(id, name string, description *string, userID string, now time.Time) (Organization, error) {
	if err := requireNonEmpty("name", name); err != nil {
		return Organization{}, err
	}
	if err := requireNonEmpty("created by", userID); err != nil {
		return Organization{}, err
	}
	return Organization{
		OrganizationID: id,
		Name:           name,
		Description:    description,
		CreatedAt:      now,
		CreatedBy:      userID,
	}, nil
}
