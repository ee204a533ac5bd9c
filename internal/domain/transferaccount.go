package domain

import "time"

// TransferAccount is a named bucket that TRANSFER-method income is attributed
// to. Accounts are unique by name within an organization and are soft-disabled
// rather than deleted once movements reference them.
type TransferAccount struct {
	ID             string
	OrganizationID string
	Name           string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
