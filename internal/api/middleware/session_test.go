package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-system/internal/core/domain"
	"github.com/bookstore/catalog-system/internal/core/service"
)

const testSecret = "test-secret"

var testCookie = Cookie{Name: "BookStoreAuth"}

func issueToken(t *testing.T, issuer *service.SessionIssuer, role string, at time.Time) string {
	t.Helper()
	_, token, err := issuer.Issue(domain.Identity{UserID: 7, Username: "bob", RoleName: role}, at)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return token
}

// stubRenewer reissues sessions without a store, or fails with err.
type stubRenewer struct {
	issuer *service.SessionIssuer
	err    error
	calls  int
}

func (r *stubRenewer) Renew(_ context.Context, s *domain.Session, now time.Time) (*domain.Session, string, error) {
	r.calls++
	if r.err != nil {
		return nil, "", r.err
	}
	return r.issuer.Issue(domain.Identity{UserID: s.UserID, Username: s.Username, RoleName: s.RoleName}, now)
}

// runSession executes the Session middleware for req and returns the session
// the downstream handler observed.
func runSession(t *testing.T, issuer *service.SessionIssuer, now time.Time, req *http.Request) (*domain.Session, *httptest.ResponseRecorder) {
	t.Helper()
	return runSessionWith(t, SessionConfig{
		Verifier: issuer,
		Renewer:  &stubRenewer{issuer: issuer},
		Now:      func() time.Time { return now },
	}, req)
}

func runSessionWith(t *testing.T, cfg SessionConfig, req *http.Request) (*domain.Session, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	cfg.Cookie = testCookie
	cfg.Logger = zerolog.Nop()

	var seen *domain.Session
	h := Session(cfg)(func(c echo.Context) error {
		seen = SessionFrom(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return seen, rec
}

func TestSession_NoCredential(t *testing.T) {
	issuer := service.NewSessionIssuer(testSecret, 24*time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	got, rec := runSession(t, issuer, time.Now(), req)
	if got != nil {
		t.Fatalf("expected no session, got %+v", got)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("expected no cookies to be set")
	}
}

func TestSession_CookieToken(t *testing.T) {
	issuer := service.NewSessionIssuer(testSecret, 24*time.Hour)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: issueToken(t, issuer, "Admin", now)})

	got, rec := runSession(t, issuer, now.Add(time.Hour), req)
	if got == nil {
		t.Fatal("expected session")
	}
	if got.Username != "bob" || got.Role != domain.RoleAdmin {
		t.Fatalf("unexpected session: %+v", got)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("fresh session must not be renewed")
	}
}

func TestSession_BearerFallback(t *testing.T) {
	issuer := service.NewSessionIssuer(testSecret, 24*time.Hour)
	now := time.Now()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issueToken(t, issuer, "User", now))

	got, _ := runSession(t, issuer, now, req)
	if got == nil || got.Role != domain.RoleUser {
		t.Fatalf("expected user session, got %+v", got)
	}
}

func TestSession_MalformedBearerIgnored(t *testing.T) {
	issuer := service.NewSessionIssuer(testSecret, 24*time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Token abc")

	if got, _ := runSession(t, issuer, time.Now(), req); got != nil {
		t.Fatalf("expected no session, got %+v", got)
	}
}

func TestSession_ForgedCookieCleared(t *testing.T) {
	issuer := service.NewSessionIssuer(testSecret, 24*time.Hour)
	forger := service.NewSessionIssuer("other-secret", 24*time.Hour)
	now := time.Now()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: issueToken(t, forger, "Admin", now)})

	got, rec := runSession(t, issuer, now, req)
	if got != nil {
		t.Fatalf("forged token accepted: %+v", got)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected cookie to be cleared, got %+v", cookies)
	}
}

func TestSession_ExpiredCookie(t *testing.T) {
	issuer := service.NewSessionIssuer(testSecret, 24*time.Hour)
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: issueToken(t, issuer, "Admin", issued)})

	if got, _ := runSession(t, issuer, issued.Add(25*time.Hour), req); got != nil {
		t.Fatalf("expired token accepted: %+v", got)
	}
}

func TestSession_SlidingRenewal(t *testing.T) {
	issuer := service.NewSessionIssuer(testSecret, 24*time.Hour)
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issued.Add(13 * time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: issueToken(t, issuer, "User", issued)})

	got, rec := runSession(t, issuer, now, req)
	if got == nil {
		t.Fatal("expected session")
	}
	if !got.ExpiresAt.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("expected renewed expiry %v, got %v", now.Add(24*time.Hour), got.ExpiresAt)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != testCookie.Name || cookies[0].Value == "" {
		t.Fatalf("expected renewed cookie, got %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}
	if _, err := issuer.Parse(cookies[0].Value, now); err != nil {
		t.Fatalf("renewed token does not parse: %v", err)
	}
}

func TestSession_BearerNotRenewed(t *testing.T) {
	issuer := service.NewSessionIssuer(testSecret, 24*time.Hour)
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issueToken(t, issuer, "User", issued))

	_, rec := runSession(t, issuer, issued.Add(20*time.Hour), req)
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("bearer sessions must not receive a cookie")
	}
}

func TestSession_FreshCookieSkipsRenewal(t *testing.T) {
	issuer := service.NewSessionIssuer(testSecret, 24*time.Hour)
	renewer := &stubRenewer{issuer: issuer}
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: issueToken(t, issuer, "User", issued)})

	got, _ := runSessionWith(t, SessionConfig{
		Verifier: issuer,
		Renewer:  renewer,
		Now:      func() time.Time { return issued.Add(6 * time.Hour) },
	}, req)
	if got == nil {
		t.Fatal("expected session")
	}
	if renewer.calls != 0 {
		t.Fatalf("renewer consulted %d times in the first half of the window", renewer.calls)
	}
}

func TestSession_RenewalRefusedClearsCookie(t *testing.T) {
	issuer := service.NewSessionIssuer(testSecret, 24*time.Hour)
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: issueToken(t, issuer, "Admin", issued)})

	got, rec := runSessionWith(t, SessionConfig{
		Verifier: issuer,
		Renewer:  &stubRenewer{issuer: issuer, err: domain.ErrAccountDeactivated},
		Now:      func() time.Time { return issued.Add(13 * time.Hour) },
	}, req)
	if got != nil {
		t.Fatalf("deactivated account kept its session: %+v", got)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected cookie to be cleared, got %+v", cookies)
	}
}

func TestSession_RenewalStoreFailureKeepsWindow(t *testing.T) {
	issuer := service.NewSessionIssuer(testSecret, 24*time.Hour)
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: issueToken(t, issuer, "User", issued)})

	got, rec := runSessionWith(t, SessionConfig{
		Verifier: issuer,
		Renewer:  &stubRenewer{issuer: issuer, err: &domain.StoreError{Op: "find", Err: errors.New("timeout")}},
		Now:      func() time.Time { return issued.Add(13 * time.Hour) },
	}, req)
	if got == nil {
		t.Fatal("expected the current session to survive a store outage")
	}
	if !got.ExpiresAt.Equal(issued.Add(24 * time.Hour)) {
		t.Fatalf("expected original expiry, got %v", got.ExpiresAt)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("no cookie should be written when renewal fails")
	}
}

func TestSession_InvalidCookieFallsBackToBearer(t *testing.T) {
	issuer := service.NewSessionIssuer(testSecret, 24*time.Hour)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: issueToken(t, issuer, "Admin", now.Add(-48*time.Hour))})
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issueToken(t, issuer, "User", now))

	got, rec := runSession(t, issuer, now.Add(time.Hour), req)
	if got == nil || got.Role != domain.RoleUser {
		t.Fatalf("expected the bearer session, got %+v", got)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected stale cookie to be cleared, got %+v", cookies)
	}
}
