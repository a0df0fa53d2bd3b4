package domain

import (
	"strings"
	"time"
)

// Role is an administrator-managed group that accounts belong to.
type Role struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleKind is the closed set of roles authorization decisions are made on.
// Role names that do not match a known kind resolve to RoleUnknown.
type RoleKind uint8

const (
	RoleUnknown RoleKind = iota
	RoleAdmin
	RoleUser
)

const (
	RoleNameAdmin = "Admin"
	RoleNameUser  = "User"
)

// ParseRoleKind maps a stored role name onto a RoleKind, ignoring case and
// surrounding whitespace.
func ParseRoleKind(name string) RoleKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case strings.ToLower(RoleNameAdmin):
		return RoleAdmin
	case strings.ToLower(RoleNameUser):
		return RoleUser
	default:
		return RoleUnknown
	}
}

func (k RoleKind) String() string {
	switch k {
	case RoleAdmin:
		return RoleNameAdmin
	case RoleUser:
		return RoleNameUser
	default:
		return "unknown"
	}
}

// NormalizeRoleName trims surrounding whitespace.
func NormalizeRoleName(name string) string {
	return strings.TrimSpace(name)
}

// RoleNameKey is the case-folded form stores index role names by.
func RoleNameKey(name string) string {
	return strings.ToLower(NormalizeRoleName(name))
}
