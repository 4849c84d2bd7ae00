package identity

import (
	"context"
	"sync"
)

// MockProvider is a mock implementation of Provider for testing.
// It is safe for concurrent use.
type MockProvider struct {
	mu sync.Mutex

	// Spies for method calls
	SignUpFunc          func(ctx context.Context, email, password, displayName string) (Session, error)
	SignInFunc          func(ctx context.Context, email, password string) (Session, error)
	SignInWithPopupFunc func(ctx context.Context) (Session, error)
	UpdateProfileFunc   func(ctx context.Context, userID, displayName string) (Session, error)
	SignOutFunc         func(ctx context.Context) error

	// Call records
	SignUpCalls          []SignUpCall
	SignInCalls          []SignInCall
	SignInWithPopupCalls int
	UpdateProfileCalls   []UpdateProfileCall
	SignOutCalls         int
}

// SignUpCall holds the arguments for a call to SignUp.
type SignUpCall struct {
	Email       string
	Password    string
	DisplayName string
}

// SignInCall holds the arguments for a call to SignIn.
type SignInCall struct {
	Email    string
	Password string
}

// UpdateProfileCall holds the arguments for a call to UpdateProfile.
type UpdateProfileCall struct {
	UserID      string
	DisplayName string
}

// NewMockProvider creates a new mock Provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Reset clears all call records.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SignUpCalls = nil
	m.SignInCalls = nil
	m.SignInWithPopupCalls = 0
	m.UpdateProfileCalls = nil
	m.SignOutCalls = 0
}

func (m *MockProvider) SignUp(ctx context.Context, email, password, displayName string) (Session, error) {
	m.mu.Lock()
	m.SignUpCalls = append(m.SignUpCalls, SignUpCall{Email: email, Password: password, DisplayName: displayName})
	fn := m.SignUpFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, email, password, displayName)
	}
	return Authenticated("mock-user", email, displayName), nil
}

func (m *MockProvider) SignIn(ctx context.Context, email, password string) (Session, error) {
	m.mu.Lock()
	m.SignInCalls = append(m.SignInCalls, SignInCall{Email: email, Password: password})
	fn := m.SignInFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, email, password)
	}
	return Authenticated("mock-user", email, "Mock User"), nil
}

func (m *MockProvider) SignInWithPopup(ctx context.Context) (Session, error) {
	m.mu.Lock()
	m.SignInWithPopupCalls++
	fn := m.SignInWithPopupFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return Authenticated("mock-user", "mock@example.com", "Mock User"), nil
}

func (m *MockProvider) UpdateProfile(ctx context.Context, userID, displayName string) (Session, error) {
	m.mu.Lock()
	m.UpdateProfileCalls = append(m.UpdateProfileCalls, UpdateProfileCall{UserID: userID, DisplayName: displayName})
	fn := m.UpdateProfileFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, userID, displayName)
	}
	return Authenticated(userID, "mock@example.com", displayName), nil
}

func (m *MockProvider) SignOut(ctx context.Context) error {
	m.mu.Lock()
	m.SignOutCalls++
	fn := m.SignOutFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return nil
}
