package domain

import (
	"slices"
	"time"
)

// Session is the claim set carried by the client between requests. It is
// never persisted server-side.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	RoleName  string    `json:"role_name"`
	Role      RoleKind  `json:"-"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Decision is the outcome of an authorization check.
type Decision uint8

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "unauthenticated"
	case DenyForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Policy describes who may invoke an operation. Anonymous operations need no
// session; otherwise a valid session is required and, when Roles is non-empty,
// its role kind must be one of them.
type Policy struct {
	Anonymous bool
	Roles     []RoleKind
}

var (
	PolicyAnonymous     = Policy{Anonymous: true}
	PolicyAuthenticated = Policy{}
	PolicyAdmin         = Policy{Roles: []RoleKind{RoleAdmin}}
)

// Permits reports whether kind satisfies the policy's role set.
func (p Policy) Permits(kind RoleKind) bool {
	if len(p.Roles) == 0 {
		return true
	}
	return slices.Contains(p.Roles, kind)
}
