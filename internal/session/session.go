package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/schoolsharthi/webclient/internal/gateway"
	"github.com/schoolsharthi/webclient/internal/models"
)

// CookieName is the single persisted piece of session state: the bearer
// token. The user profile is never persisted, it is re-fetched on every
// protected page load.
const CookieName = "access_token"

const CookieTTL = 7 * 24 * time.Hour

// Store resolves "who is logged in". It is an injected service, not a
// singleton: construct it once in main and hand it to the web layer.
type Store struct {
	auth   *gateway.AuthBundle
	logger *slog.Logger
	parser *jwt.Parser
}

type Session struct {
	Token string
	User  *models.User
}

func NewStore(auth *gateway.AuthBundle, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		auth:   auth,
		logger: logger,
		parser: jwt.NewParser(),
	}
}

// Login posts credentials and, on success, immediately loads the profile.
// A failed login propagates the server error unchanged, and so does a
// failed profile fetch right after it: a token whose profile the server
// will not serve is discarded on the spot, never persisted.
func (s *Store) Login(ctx context.Context, username, password string) (*Session, error) {
	tok, err := s.auth.Login(ctx, gateway.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	user, err := s.LoadUser(ctx, tok.AccessToken)
	if err != nil {
		s.logger.Warn("profile fetch after login failed", "username", username, "error", err)
		return nil, err
	}
	return &Session{Token: tok.AccessToken, User: user}, nil
}

type RegisterParams struct {
	Email    string
	Username string
	Password string
	FullName string
	Role     string
}

// Register creates the account and then performs a regular login with the
// same credentials; the API does not authenticate on registration.
func (s *Store) Register(ctx context.Context, p RegisterParams) (*Session, error) {
	_, err := s.auth.Register(ctx, gateway.RegisterRequest{
		Email:    p.Email,
		Username: p.Username,
		Password: p.Password,
		FullName: p.FullName,
		Role:     p.Role,
	})
	if err != nil {
		return nil, err
	}
	return s.Login(ctx, p.Username, p.Password)
}

// LoadUser resolves token into a profile. An empty token yields (nil, nil):
// logged out, nothing to clean up. Any non-nil error means the token must
// be discarded by the caller; the profile fetch is authoritative, token
// presence alone never implies a valid session.
func (s *Store) LoadUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	if err := s.checkExpiry(token); err != nil {
		return nil, err
	}

	user, err := s.auth.Me(gateway.WithToken(ctx, token))
	if err != nil {
		return nil, err
	}
	return user, nil
}

// checkExpiry inspects the token's exp claim without verifying the
// signature (the signing secret lives on the server). A token already past
// its expiry is not worth a round trip. Opaque or malformed tokens pass
// through: the server is the authority on those.
func (s *Store) checkExpiry(token string) error {
	claims := jwt.MapClaims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if time.Now().After(exp.Time) {
		return jwt.ErrTokenExpired
	}
	return nil
}

// Cookie builds the persisted token cookie, 7-day expiry.
func Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(CookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie evicts the token. Logout and 401 handling both use it.
func ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-1 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
