package primary

import "context"

// LoginResult reports what a successful login established.
type LoginResult struct {
	Roles []string
}

// AuthService drives login and logout against the remote API, keeping the
// shared session in sync.
type AuthService interface {
	// Login exchanges credentials for a bearer token and persists it.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Logout clears the persisted session.
	Logout(ctx context.Context) error
}
