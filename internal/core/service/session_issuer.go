package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bookstore/catalog-system/internal/core/domain"
)

const (
	DefaultSessionTTL = 24 * time.Hour
	sessionIssuer     = "bookstore"
)

// SessionIssuer mints and verifies HS256-signed session tokens. Sessions are
// self-contained; logging out only clears the client's copy.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
}

type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	UserID   int64  `json:"uid"`
	jwt.RegisteredClaims
}

func NewSessionIssuer(secret string, ttl time.Duration) *SessionIssuer {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL is the length of a session window.
func (i *SessionIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a new session for identity valid from now until now+TTL.
func (i *SessionIssuer) Issue(identity domain.Identity, now time.Time) (*domain.Session, string, error) {
	now = now.UTC().Truncate(time.Second)
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    identity.UserID,
		Username:  identity.Username,
		RoleName:  identity.RoleName,
		Role:      domain.ParseRoleKind(identity.RoleName),
		IssuedAt:  now,
		ExpiresAt: now.Add(i.ttl),
	}

	claims := sessionClaims{
		Username: session.Username,
		Role:     session.RoleName,
		UserID:   session.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatInt(session.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, "", fmt.Errorf("sign session: %w", err)
	}
	return session, token, nil
}

// Parse verifies token and returns its session. Tampered or malformed tokens
// yield domain.ErrUnauthenticated, expired ones domain.ErrSessionExpired.
func (i *SessionIssuer) Parse(token string, now time.Time) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrUnauthenticated
	}
	if claims.UserID <= 0 || claims.Username == "" || claims.IssuedAt == nil {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.Session{
		ID:        claims.ID,
		UserID:    claims.UserID,
		Username:  claims.Username,
		RoleName:  claims.Role,
		Role:      domain.ParseRoleKind(claims.Role),
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

// ShouldRenew reports whether a still-valid session has used up more than
// half of its window and should be reissued.
func (i *SessionIssuer) ShouldRenew(session *domain.Session, now time.Time) bool {
	remaining := session.ExpiresAt.Sub(now)
	return remaining > 0 && remaining < i.ttl/2
}
