package identity

import "context"

// Provider is the external identity service. It owns credential verification,
// session tokens and password policy; this application only realizes the
// sessions it hands back.
type Provider interface {
	SignUp(ctx context.Context, email, password, displayName string) (Session, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignInWithPopup(ctx context.Context) (Session, error)
	UpdateProfile(ctx context.Context, userID, displayName string) (Session, error)
	SignOut(ctx context.Context) error
}
