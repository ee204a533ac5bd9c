package domain

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 128
	MaxNameLength     = 255
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugStrip    = regexp.MustCompile(`[^a-z0-9]+`)
	slugTrimDash = regexp.MustCompile(`(^-|-$)`)
)

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegex.MatchString(email) {
		return NewValidationError("email", "invalid email format")
	}
	return nil
}

// ValidatePassword validates password length bounds.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return NewValidationError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if len(password) > MaxPasswordLength {
		return NewValidationError("password", fmt.Sprintf("must not exceed %d characters", MaxPasswordLength))
	}
	return nil
}

// ValidateName validates a non-empty bounded name (accounts, organizations).
func ValidateName(field, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewValidationError(field, "is required")
	}
	if len(name) > MaxNameLength {
		return NewValidationError(field, fmt.Sprintf("must not exceed %d characters", MaxNameLength))
	}
	return nil
}

// Slugify lowers a name to a URL-safe slug: runs of non-alphanumerics become
// single dashes and leading/trailing dashes are removed.
func Slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return slugTrimDash.ReplaceAllString(slug, "")
}
