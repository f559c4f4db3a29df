package auth

import "context"

// MockVerifier maps tokens to users for tests. Unknown tokens get User, or
// ErrInvalidToken when User is nil. Error overrides everything.
type MockVerifier struct {
	Tokens map[string]*User
	User   *User
	Error  error
}

func (m *MockVerifier) Verify(_ context.Context, token string) (*User, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	if u, ok := m.Tokens[token]; ok {
		return u, nil
	}
	if m.User == nil {
		return nil, ErrInvalidToken
	}
	return m.User, nil
}

// TestUser returns the default caller used across handler tests.
func TestUser() *User {
	return &User{UID: "test-user-123", Email: "test@example.com", EmailVerified: true}
}

var _ Verifier = (*MockVerifier)(nil)
