package gateway

import (
	"context"

	"github.com/schoolsharthi/webclient/internal/models"
)

type AuthBundle struct{ c *Client }

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (b *AuthBundle) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	var out models.User
	if err := b.c.postJSON(ctx, "auth", "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *AuthBundle) Login(ctx context.Context, req LoginRequest) (*models.Token, error) {
	var out models.Token
	if err := b.c.postJSON(ctx, "auth", "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *AuthBundle) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := b.c.getJSON(ctx, "auth", "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
