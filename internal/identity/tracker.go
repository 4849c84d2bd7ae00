package identity

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/puzzlehut/daily-widget/internal/events"
)

// Tracker wraps the provider's session stream into a local observable value
// plus imperative sign-in/sign-up/sign-out operations. Every transition is
// re-published on the bus so the host page stays in sync without polling.
type Tracker struct {
	mu       sync.RWMutex
	provider Provider
	bus      events.Bus
	current  Session
}

// NewTracker creates a Tracker starting from the anonymous session and
// announces that state on the bus.
func NewTracker(provider Provider, bus events.Bus) *Tracker {
	t := &Tracker{
		provider: provider,
		bus:      bus,
		current:  Anonymous(),
	}
	t.publishState()
	return t
}

// Current returns the session of the current actor.
func (t *Tracker) Current() Session {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// SignUp creates an account with the chosen display name and realizes the
// session. Field validation happens before any network call.
func (t *Tracker) SignUp(ctx context.Context, email, password, displayName string) (Session, error) {
	if err := ValidateEmail(email); err != nil {
		return Anonymous(), err
	}
	if err := ValidatePassword(password); err != nil {
		return Anonymous(), err
	}
	if err := ValidateDisplayName(displayName); err != nil {
		return Anonymous(), err
	}

	session, err := t.provider.SignUp(ctx, email, password, displayName)
	if err != nil {
		return Anonymous(), err
	}
	t.setSession(session)
	return session, nil
}

// SignIn authenticates against the provider.
func (t *Tracker) SignIn(ctx context.Context, email, password string) (Session, error) {
	if err := ValidateEmail(email); err != nil {
		return Anonymous(), err
	}
	if err := ValidatePassword(password); err != nil {
		return Anonymous(), err
	}

	session, err := t.provider.SignIn(ctx, email, password)
	if err != nil {
		return Anonymous(), err
	}
	t.setSession(session)
	return session, nil
}

// SignInWithPopup runs the provider-hosted consent flow. A blocked popup
// surfaces as ErrPopupBlocked so the shell can show its distinct instruction.
func (t *Tracker) SignInWithPopup(ctx context.Context) (Session, error) {
	session, err := t.provider.SignInWithPopup(ctx)
	if err != nil {
		return Anonymous(), err
	}
	t.setSession(session)
	return session, nil
}

// UpdateDisplayName changes the display name on the current account and
// republishes the session.
func (t *Tracker) UpdateDisplayName(ctx context.Context, displayName string) (Session, error) {
	if err := ValidateDisplayName(displayName); err != nil {
		return t.Current(), err
	}

	current := t.Current()
	if current.IsAnonymous() {
		return current, &IdentityError{Code: "not-signed-in", Message: "You must be signed in to edit your profile"}
	}

	session, err := t.provider.UpdateProfile(ctx, current.UserID, displayName)
	if err != nil {
		return current, err
	}
	t.setSession(session)
	return session, nil
}

// SignOut clears the session. The local session is torn down even if the
// provider call fails.
func (t *Tracker) SignOut(ctx context.Context) error {
	err := t.provider.SignOut(ctx)
	if err != nil {
		log.Error("Provider sign-out failed", "error", err)
	}
	t.setSession(Anonymous())
	return err
}

func (t *Tracker) setSession(session Session) {
	t.mu.Lock()
	t.current = session
	t.mu.Unlock()
	t.publishState()
}

func (t *Tracker) publishState() {
	session := t.Current()
	payload := events.AuthStatePayload{}
	if !session.IsAnonymous() {
		payload.User = &events.User{
			UID:         session.UserID,
			Email:       session.Email,
			DisplayName: session.DisplayName,
		}
	}
	if err := t.bus.Publish(events.AuthStateChanged, payload); err != nil {
		log.Error("Failed to publish auth state", "error", err)
	}
}
