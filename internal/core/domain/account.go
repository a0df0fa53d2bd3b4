package domain

import (
	"strings"
	"time"
)

// MinPasswordLength is the shortest password accepted on create, update, and
// password change.
const MinPasswordLength = 6

// Account models a user able to sign in to the catalog. Accounts are never
// removed; deactivation clears Active.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	RoleID       int64     `json:"role_id"`
	RoleName     string    `json:"role_name,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is what a successful login hands to the session issuer.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	RoleName string `json:"role_name"`
}

// NormalizeUsername trims surrounding whitespace. Comparisons between
// usernames must additionally ignore case; see UsernameKey.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// UsernameKey is the case-folded form stores index usernames by.
func UsernameKey(username string) string {
	return strings.ToLower(NormalizeUsername(username))
}
