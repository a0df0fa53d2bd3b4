package service

import (
	"time"

	"github.com/bookstore/catalog-system/internal/core/domain"
)

// Authorize decides whether a request carrying session may run an operation
// guarded by policy. A nil session means the request presented none.
func Authorize(session *domain.Session, now time.Time, policy domain.Policy) domain.Decision {
	if policy.Anonymous {
		return domain.Allow
	}
	if session == nil || session.Expired(now) {
		return domain.DenyUnauthenticated
	}
	if !policy.Permits(session.Role) {
		return domain.DenyForbidden
	}
	return domain.Allow
}
