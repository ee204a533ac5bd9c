package domain

import "time"

// TokenPurpose distinguishes single-use token flows.
type TokenPurpose string

const (
	TokenPasswordReset     TokenPurpose = "PASSWORD_RESET"
	TokenEmailVerification TokenPurpose = "EMAIL_VERIFICATION"
)

// ActionToken is a single-use, expiring token backing the password-reset and
// email-change flows. Email holds the address the token was sent to; NewEmail
// is set only for email-verification tokens and carries the address being
// adopted.
type ActionToken struct {
	ID        string
	Token     string
	Purpose   TokenPurpose
	UserID    string
	Email     string
	NewEmail  string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Usable reports whether the token can still be consumed at now.
func (t *ActionToken) Usable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
