package domain

import "time"

// Client is a recurring customer in the organization's directory.
type Client struct {
	ID             string
	OrganizationID string
	Name           string
	Phone          string
	Email          string
	DefaultAddress string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks client invariants.
func (c *Client) Validate() error {
	if c.Name == "" {
		return NewValidationError("name", "is required")
	}
	if c.Phone == "" {
		return NewValidationError("phone", "is required")
	}
	if c.Email != "" {
		if err := ValidateEmail(c.Email); err != nil {
			return NewValidationError("email", "invalid email format")
		}
	}
	return nil
}
