package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/schoolsharthi/webclient/internal/gateway"
	"github.com/schoolsharthi/webclient/internal/models"
	"github.com/schoolsharthi/webclient/internal/session"
)

const (
	CtxUser  = "user"
	CtxToken = "token"
)

// SessionMiddleware hydrates the session on every request: the token cookie
// goes into the request context for the gateway to pick up, and the profile
// is re-fetched from the server. The fetch is authoritative; a cookie whose
// token the server rejects is evicted on the spot.
type SessionMiddleware struct {
	Sessions *session.Store
	Logger   *slog.Logger
}

func (m *SessionMiddleware) Load(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := ""
		if ck, err := c.Cookie(session.CookieName); err == nil {
			token = ck.Value
		}

		ctx := gateway.WithToken(c.Request().Context(), token)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Set(CtxToken, token)

		if token == "" {
			return next(c)
		}

		user, err := m.Sessions.LoadUser(ctx, token)
		if err != nil {
			c.SetCookie(session.ExpiredCookie())
			c.Set(CtxToken, "")
			c.SetRequest(c.Request().WithContext(gateway.WithToken(c.Request().Context(), "")))
			return next(c)
		}
		c.Set(CtxUser, user)
		return next(c)
	}
}

// RequireSession gates protected pages: anonymous visitors get a full
// redirect to the login page, not an error body.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return next(c)
	}
}

// RequireAdmin re-reads the role on every request; the authorization
// decision is never cached.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		if !user.IsAdmin() {
			return c.Redirect(http.StatusSeeOther, "/dashboard")
		}
		return next(c)
	}
}

// userKey partitions per-user cached lists (doubts, career queries) so one
// student's history never serves another's page.
func userKey(c echo.Context) string {
	if u := CurrentUser(c); u != nil {
		return strconv.Itoa(u.ID)
	}
	return ""
}

// clientView scopes a cache view to the requesting client. Filter
// supersession is per client: one visitor switching filters must never
// discard another visitor's in-flight fetch for the same page. Logged-in
// clients keep supersession across their own requests via the token; an
// anonymous request gets a throwaway identity, which disables the check
// for it.
func clientView(c echo.Context, name string) string {
	if tok, ok := c.Get(CtxToken).(string); ok && tok != "" {
		return name + "|" + tok
	}
	return name + "|" + uuid.NewString()
}

func CurrentUser(c echo.Context) *models.User {
	if u, ok := c.Get(CtxUser).(*models.User); ok {
		return u
	}
	return nil
}

// fail converts a gateway error into the page response. A 401 anywhere
// evicts the cookie and redirects to /login; every concurrent 401 does so
// independently, which is idempotent in effect. Other errors render inline:
// the server's detail, or a fixed network-error message when the server was
// never reached.
func fail(c echo.Context, err error) error {
	if errors.Is(err, gateway.ErrSessionExpired) {
		c.SetCookie(session.ExpiredCookie())
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	status := http.StatusBadGateway
	var ae *gateway.APIError
	if errors.As(err, &ae) {
		status = ae.StatusCode
	}
	return c.JSON(status, echo.Map{"error": gateway.UserMessage(err)})
}

// invalid renders a client-side validation failure. No request has left the
// building at this point.
func invalid(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
