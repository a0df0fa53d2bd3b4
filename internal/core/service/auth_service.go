package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-system/internal/core/domain"
	"github.com/bookstore/catalog-system/internal/core/ports"
)

// AuthService implements login and password change.
type AuthService struct {
	accounts  ports.AccountRepository
	roles     *RoleDirectory
	hasher    ports.PasswordHasher
	log       zerolog.Logger
	dummyHash string
}

func NewAuthService(accounts ports.AccountRepository, roles *RoleDirectory, hasher ports.PasswordHasher, log zerolog.Logger) *AuthService {
	// Compared against on unknown usernames so both rejection paths cost a
	// hash verification.
	dummy, err := hasher.Hash("no-such-account")
	if err != nil {
		log.Warn().Err(err).Msg("could not prepare dummy password hash")
	}
	return &AuthService{
		accounts:  accounts,
		roles:     roles,
		hasher:    hasher,
		log:       log,
		dummyHash: dummy,
	}
}

// Login checks the credentials and returns the identity to issue a session for.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials;
// ErrAccountDeactivated is only reported once the password was verified.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Identity, error) {
	username = domain.NormalizeUsername(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	account, err := s.accounts.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrAccountNotFound) {
		s.hasher.Verify(s.dummyHash, password)
		s.log.Info().Str("username", username).Msg("login rejected: unknown username")
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, storeErr(s.log, "find account by username", err)
	}

	if !s.hasher.Verify(account.PasswordHash, password) {
		s.log.Info().Int64("user_id", account.ID).Msg("login rejected: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}
	if !account.Active {
		s.log.Info().Int64("user_id", account.ID).Msg("login rejected: account deactivated")
		return nil, domain.ErrAccountDeactivated
	}

	roleName, err := s.roles.Name(ctx, account.RoleID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", account.ID).Str("role", roleName).Msg("login succeeded")
	return &domain.Identity{
		UserID:   account.ID,
		Username: account.Username,
		RoleName: roleName,
	}, nil
}

// ChangePassword replaces the stored digest after verifying oldPassword. A
// mismatch leaves the account untouched.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if oldPassword == "" {
		return domain.ErrInvalidInput
	}

	account, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return storeErr(s.log, "find account by id", err)
	}
	if err := checkPassword(newPassword); err != nil {
		return err
	}

	if !s.hasher.Verify(account.PasswordHash, oldPassword) {
		s.log.Info().Int64("user_id", userID).Msg("password change rejected: current password mismatch")
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	account.PasswordHash = hash
	account.UpdatedAt = time.Now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		return storeErr(s.log, "update account password", err)
	}

	s.log.Info().Int64("user_id", userID).Msg("password changed")
	return nil
}

// checkPassword applies the password policy shared by every write path.
func checkPassword(password string) error {
	if password == "" {
		return domain.ErrPasswordRequired
	}
	if utf8.RuneCountInString(password) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	return nil
}
