package web

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolsharthi/webclient/internal/session"
)

type AuthHandler struct {
	Sessions *session.Store
	Logger   *slog.Logger
}

func (h *AuthHandler) LoginPage(c echo.Context) error {
	if CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.JSON(http.StatusOK, echo.Map{"page": "login"})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return invalid(c, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return invalid(c, "Username and password are required")
	}

	sess, err := h.Sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		// The server error passes through unchanged; a wrong password
		// surfaces the upstream detail verbatim and sets no cookie.
		return fail(c, err)
	}

	c.SetCookie(session.Cookie(sess.Token))
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *AuthHandler) RegisterPage(c echo.Context) error {
	if CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.JSON(http.StatusOK, echo.Map{"page": "register"})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Email    string `json:"email" form:"email"`
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
		FullName string `json:"full_name" form:"full_name"`
		Role     string `json:"role" form:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return invalid(c, "invalid request body")
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return invalid(c, "Email, username and password are required")
	}

	sess, err := h.Sessions.Register(c.Request().Context(), session.RegisterParams{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		return fail(c, err)
	}

	c.SetCookie(session.Cookie(sess.Token))
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout deletes the cookie and nothing else; token invalidation on the
// server side is not this client's concern.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(session.ExpiredCookie())
	return c.Redirect(http.StatusSeeOther, "/")
}
