package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-system/internal/core/domain"
	"github.com/bookstore/catalog-system/internal/core/ports"
)

// SessionRenewer reissues sliding sessions after re-reading the account, so a
// deactivated or removed account cannot keep extending its window. Role
// changes made since the last issue take effect on renewal.
type SessionRenewer struct {
	issuer   *SessionIssuer
	accounts ports.AccountRepository
	roles    *RoleDirectory
	log      zerolog.Logger
}

func NewSessionRenewer(issuer *SessionIssuer, accounts ports.AccountRepository, roles *RoleDirectory, log zerolog.Logger) *SessionRenewer {
	return &SessionRenewer{issuer: issuer, accounts: accounts, roles: roles, log: log}
}

// Renew returns a fresh session for the account behind session. A missing
// account yields domain.ErrUnauthenticated and an inactive one
// domain.ErrAccountDeactivated.
func (r *SessionRenewer) Renew(ctx context.Context, session *domain.Session, now time.Time) (*domain.Session, string, error) {
	if session.Expired(now) {
		return nil, "", domain.ErrSessionExpired
	}

	account, err := r.accounts.FindByID(ctx, session.UserID)
	if errors.Is(err, domain.ErrAccountNotFound) {
		r.log.Info().Int64("user_id", session.UserID).Msg("renewal refused: account no longer exists")
		return nil, "", domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, "", storeErr(r.log, "find account for renewal", err)
	}
	if !account.Active {
		r.log.Info().Int64("user_id", account.ID).Msg("renewal refused: account deactivated")
		return nil, "", domain.ErrAccountDeactivated
	}

	roleName, err := r.roles.Name(ctx, account.RoleID)
	if err != nil {
		return nil, "", err
	}

	return r.issuer.Issue(domain.Identity{
		UserID:   account.ID,
		Username: account.Username,
		RoleName: roleName,
	}, now)
}
