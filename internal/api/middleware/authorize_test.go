package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-system/internal/core/domain"
)

func runAuthorize(t *testing.T, policy domain.Policy, session *domain.Session, now time.Time) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if session != nil {
		c.Set(ContextSession, session)
	}

	called := false
	h := authorizeAt(policy, func() time.Time { return now })(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return called, h(c)
}

func sessionFor(kind domain.RoleKind, name string, expires time.Time) *domain.Session {
	return &domain.Session{
		UserID:    1,
		Username:  "bob",
		RoleName:  name,
		Role:      kind,
		IssuedAt:  expires.Add(-24 * time.Hour),
		ExpiresAt: expires,
	}
}

func TestAuthorize_AnonymousAllowsEveryone(t *testing.T) {
	called, err := runAuthorize(t, domain.PolicyAnonymous, nil, time.Now())
	if err != nil || !called {
		t.Fatalf("expected pass-through, called=%v err=%v", called, err)
	}
}

func TestAuthorize_MissingSession(t *testing.T) {
	called, err := runAuthorize(t, domain.PolicyAuthenticated, nil, time.Now())
	if called {
		t.Fatal("handler must not run")
	}
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthorize_ExpiredSession(t *testing.T) {
	now := time.Now()
	s := sessionFor(domain.RoleAdmin, "Admin", now.Add(-time.Minute))

	_, err := runAuthorize(t, domain.PolicyAdmin, s, now)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthorize_WrongRole(t *testing.T) {
	now := time.Now()
	s := sessionFor(domain.RoleUser, "User", now.Add(time.Hour))

	called, err := runAuthorize(t, domain.PolicyAdmin, s, now)
	if called {
		t.Fatal("handler must not run")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAuthorize_UnknownRoleKind(t *testing.T) {
	now := time.Now()
	s := sessionFor(domain.RoleUnknown, "Clerk", now.Add(time.Hour))

	if called, err := runAuthorize(t, domain.PolicyAuthenticated, s, now); err != nil || !called {
		t.Fatalf("any session satisfies an authenticated policy, called=%v err=%v", called, err)
	}
	if _, err := runAuthorize(t, domain.PolicyAdmin, s, now); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRBAC_AllowsListedRole(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(ContextSession, sessionFor(domain.RoleUser, "User", time.Now().Add(time.Hour)))

	called := false
	h := RBAC(domain.RoleAdmin, domain.RoleUser)(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := h(c); err != nil || !called {
		t.Fatalf("expected pass-through, called=%v err=%v", called, err)
	}
}
