package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-system/internal/api/metrics"
	"github.com/bookstore/catalog-system/internal/api/middleware"
	"github.com/bookstore/catalog-system/internal/core/domain"
	"github.com/bookstore/catalog-system/internal/core/ports"
)

// SessionMinter issues the signed session handed to the client after login.
type SessionMinter interface {
	Issue(identity domain.Identity, now time.Time) (*domain.Session, string, error)
}

// AuthHandler serves login, logout and self-service password changes.
type AuthHandler struct {
	auth     ports.AuthService
	sessions SessionMinter
	cookie   middleware.Cookie
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthHandler(auth ports.AuthService, sessions SessionMinter, cookie middleware.Cookie, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, cookie: cookie, log: log, now: time.Now}
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  resultResponse
// @Failure      401   {object}  resultResponse
// @Failure      403   {object}  resultResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_input").Inc()
		return err
	}

	identity, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}

	session, token, err := h.sessions.Issue(*identity, h.now())
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return err
	}
	h.cookie.Write(c, token, session.ExpiresAt)

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	metrics.SessionsIssuedTotal.WithLabelValues("login").Inc()
	h.log.Info().
		Int64("user_id", session.UserID).
		Str("role", session.RoleName).
		Msg("user logged in")

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful.",
		Session: toSessionResponse(session),
	})
}

// Logout clears the session cookie. Tokens are not revoked server-side.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  resultResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookie.Clear(c)
	return c.JSON(http.StatusOK, resultResponse{Success: true, Message: "Logged out."})
}

// ChangePassword replaces the caller's password after checking the current one.
//
// @Summary      Change own password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  resultResponse
// @Failure      400   {object}  resultResponse
// @Failure      401   {object}  resultResponse
// @Failure      404   {object}  resultResponse
// @Router       /auth/password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.PasswordChangesTotal.WithLabelValues("invalid_input").Inc()
		return err
	}

	err = h.auth.ChangePassword(c.Request().Context(), session.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		metrics.PasswordChangesTotal.WithLabelValues(passwordChangeOutcome(err)).Inc()
		return err
	}

	metrics.PasswordChangesTotal.WithLabelValues("success").Inc()
	h.log.Info().Int64("user_id", session.UserID).Msg("password changed")
	return c.JSON(http.StatusOK, resultResponse{Success: true, Message: "Password changed successfully."})
}

// Me returns the caller's session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  resultResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountDeactivated):
		return "deactivated"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}

func passwordChangeOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
