package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-system/internal/api/metrics"
	"github.com/bookstore/catalog-system/internal/core/domain"
)

// ContextSession is the echo context key the verified session is stored under.
const ContextSession = "session"

// SessionVerifier is the part of the session issuer the middleware needs.
type SessionVerifier interface {
	Parse(token string, now time.Time) (*domain.Session, error)
	ShouldRenew(session *domain.Session, now time.Time) bool
}

// SessionRenewer reissues a cookie session that is past half its lifetime.
type SessionRenewer interface {
	Renew(ctx context.Context, session *domain.Session, now time.Time) (*domain.Session, string, error)
}

// Cookie describes the client-side session credential.
type Cookie struct {
	Name   string
	Secure bool
}

// Write stores token in the response cookie until expires.
func (ck Cookie) Write(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     ck.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   ck.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear tells the client to drop its session cookie.
func (ck Cookie) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     ck.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ck.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionConfig configures the Session middleware.
type SessionConfig struct {
	Verifier SessionVerifier
	// Renewer is optional; without it cookie sessions are never extended.
	Renewer SessionRenewer
	Cookie  Cookie
	Logger  zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Session resolves the request's session from the session cookie or, failing
// that, an "Authorization: Bearer" header, and stores it in the context. It
// never rejects a request; Authorize decides what an absent session means.
// Cookie sessions past half their lifetime are reissued while the account is
// still active, and dropped once it is not.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			t := cfg.Now()
			session := cfg.cookieSession(c, t)
			if session == nil {
				session = cfg.bearerSession(c, t)
			}
			if session != nil {
				c.Set(ContextSession, session)
			}
			return next(c)
		}
	}
}

func (cfg SessionConfig) cookieSession(c echo.Context, now time.Time) *domain.Session {
	ck, err := c.Cookie(cfg.Cookie.Name)
	if err != nil || ck.Value == "" {
		return nil
	}

	session, err := cfg.Verifier.Parse(ck.Value, now)
	if err != nil {
		cfg.Cookie.Clear(c)
		cfg.Logger.Debug().Err(err).Msg("session cookie rejected")
		return nil
	}
	if cfg.Renewer == nil || !cfg.Verifier.ShouldRenew(session, now) {
		return session
	}

	renewed, signed, err := cfg.Renewer.Renew(c.Request().Context(), session, now)
	switch {
	case err == nil:
		cfg.Cookie.Write(c, signed, renewed.ExpiresAt)
		metrics.SessionsIssuedTotal.WithLabelValues("renewal").Inc()
		return renewed
	case errors.Is(err, domain.ErrStoreFailure):
		// The current window stays valid; renewal is retried on the next request.
		cfg.Logger.Warn().Err(err).Int64("user_id", session.UserID).Msg("session renewal failed")
		return session
	default:
		cfg.Cookie.Clear(c)
		cfg.Logger.Info().Err(err).Int64("user_id", session.UserID).Msg("session renewal refused")
		return nil
	}
}

func (cfg SessionConfig) bearerSession(c echo.Context, now time.Time) *domain.Session {
	token := bearerToken(c)
	if token == "" {
		return nil
	}
	session, err := cfg.Verifier.Parse(token, now)
	if err != nil {
		cfg.Logger.Debug().Err(err).Msg("bearer token rejected")
		return nil
	}
	return session
}

// SessionFrom returns the session stored in c, or nil.
func SessionFrom(c echo.Context) *domain.Session {
	s, _ := c.Get(ContextSession).(*domain.Session)
	return s
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
