package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/plumbops/internal/ports/primary"
	"github.com/example/plumbops/internal/ports/secondary"
	"github.com/example/plumbops/internal/session"
)

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	gateway  secondary.AuthGateway
	sessions *session.Manager
}

// NewAuthService creates a new AuthService with injected dependencies.
func NewAuthService(gateway secondary.AuthGateway, sessions *session.Manager) *AuthServiceImpl {
	return &AuthServiceImpl{gateway: gateway, sessions: sessions}
}

var _ primary.AuthService = (*AuthServiceImpl)(nil)

// Login exchanges credentials for a bearer token and persists the session.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*primary.LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	rec, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if rec.Token == "" {
		return nil, fmt.Errorf("login succeeded but the response carried no token")
	}

	if err := s.sessions.Set(rec.Token, rec.Roles); err != nil {
		return nil, err
	}
	return &primary.LoginResult{Roles: rec.Roles}, nil
}

// Logout clears the persisted session. Purely local; the API holds no
// server-side session to revoke.
func (s *AuthServiceImpl) Logout(ctx context.Context) error {
	return s.sessions.Clear()
}
