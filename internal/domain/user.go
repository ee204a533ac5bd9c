package domain

import "time"

// Role is a user's role within an organization.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleMember Role = "MEMBER"
)

// IsValid reports whether the role is known.
func (r Role) IsValid() bool {
	return r == RoleOwner || r == RoleMember
}

// User is an authenticated person. A user belongs to organizations through
// Membership rows.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Organization is the tenant boundary. Every ledger, scheduling and client
// entity is scoped to exactly one organization.
type Organization struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Membership links a user to an organization with a role.
type Membership struct {
	ID             string
	UserID         string
	OrganizationID string
	Role           Role
	CreatedAt      time.Time
}
