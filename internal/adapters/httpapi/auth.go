package httpapi

import (
	"context"
	"net/http"

	"github.com/example/plumbops/internal/ports/secondary"
)

// loginResponseDTO accepts the token under any of the keys deployments have
// used over time.
type loginResponseDTO struct {
	Token       string   `json:"token"`
	AccessToken string   `json:"accessToken"`
	AccessSnake string   `json:"access_token"`
	JWT         string   `json:"jwt"`
	Roles       []string `json:"roles"`
	Role        string   `json:"role"`
}

// AuthGateway implements secondary.AuthGateway over HTTP.
type AuthGateway struct {
	client *Client
}

// NewAuthGateway creates the auth gateway.
func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

var _ secondary.AuthGateway = (*AuthGateway)(nil)

// Login exchanges credentials for a bearer token.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (*secondary.LoginRecord, error) {
	var dto loginResponseDTO
	body := map[string]string{"email": email, "password": password}
	if err := g.client.do(ctx, http.MethodPost, "/auth/login", nil, body, &dto); err != nil {
		return nil, err
	}

	roles := dto.Roles
	if len(roles) == 0 && dto.Role != "" {
		roles = []string{dto.Role}
	}
	return &secondary.LoginRecord{
		Token: firstNonEmpty(dto.Token, dto.AccessToken, dto.AccessSnake, dto.JWT),
		Roles: roles,
	}, nil
}
