package identity

import "fmt"

// Session is the identity of the current actor: either anonymous or
// authenticated. The zero value is anonymous.
type Session struct {
	authenticated bool

	UserID      string
	Email       string
	DisplayName string
}

// Anonymous returns the anonymous session.
func Anonymous() Session {
	return Session{}
}

// Authenticated returns a session for a signed-in user.
func Authenticated(userID, email, displayName string) Session {
	return Session{
		authenticated: true,
		UserID:        userID,
		Email:         email,
		DisplayName:   displayName,
	}
}

// IsAnonymous reports whether the session belongs to no signed-in user.
func (s Session) IsAnonymous() bool {
	return !s.authenticated
}

// ValidationError is a client-side field check failure. It never reaches the
// network and is shown inline against the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IdentityError is a provider-side rejection (bad credentials, email already
// in use, ...). Code carries the provider's machine-readable reason.
type IdentityError struct {
	Code    string
	Message string
}

func (e *IdentityError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// ErrPopupBlocked is the sign-in failure that gets its own user instruction:
// the provider-hosted consent surface could not be opened.
var ErrPopupBlocked = &IdentityError{
	Code:    "popup-blocked",
	Message: "Pop-up was blocked by your browser. Please allow pop-ups for this site and try again.",
}
