package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-system/internal/api/metrics"
	"github.com/bookstore/catalog-system/internal/core/domain"
	"github.com/bookstore/catalog-system/internal/core/service"
)

// Authorize enforces policy against the session placed in the context by
// Session. Denials surface as domain.ErrUnauthenticated or domain.ErrForbidden
// for the HTTP error handler to render.
func Authorize(policy domain.Policy) echo.MiddlewareFunc {
	return authorizeAt(policy, time.Now)
}

// RBAC requires a session whose role is one of roles.
func RBAC(roles ...domain.RoleKind) echo.MiddlewareFunc {
	return Authorize(domain.Policy{Roles: roles})
}

func authorizeAt(policy domain.Policy, now func() time.Time) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := service.Authorize(SessionFrom(c), now(), policy)
			metrics.AuthorizationDecisionsTotal.WithLabelValues(decision.String()).Inc()

			switch decision {
			case domain.DenyUnauthenticated:
				return domain.ErrUnauthenticated
			case domain.DenyForbidden:
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
