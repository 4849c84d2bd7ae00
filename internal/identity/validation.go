package identity

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks the shape of an email address before it is sent
// anywhere near the provider.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}
	if !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Message: "Please include an @ in the email address"}
	}
	if !emailRegex.MatchString(email) {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}
	return nil
}

// ValidatePassword enforces the minimum password length locally.
func ValidatePassword(password string) error {
	if password == "" {
		return &ValidationError{Field: "password", Message: "Password is required"}
	}
	if len(password) < 6 {
		return &ValidationError{Field: "password", Message: "Password must be at least 6 characters long"}
	}
	return nil
}

// ValidateDisplayName requires a non-empty display name.
func ValidateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "displayName", Message: "Display name is required"}
	}
	return nil
}
