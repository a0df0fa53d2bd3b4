package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-system/internal/core/domain"
	"github.com/bookstore/catalog-system/internal/core/ports"
)

// AccountService implements the administrative account lifecycle.
type AccountService struct {
	accounts ports.AccountRepository
	roles    ports.RoleRepository
	names    *RoleDirectory
	hasher   ports.PasswordHasher
	log      zerolog.Logger
}

func NewAccountService(accounts ports.AccountRepository, roles ports.RoleRepository, names *RoleDirectory, hasher ports.PasswordHasher, log zerolog.Logger) *AccountService {
	return &AccountService{accounts: accounts, roles: roles, names: names, hasher: hasher, log: log}
}

// Create registers a new, active account.
func (s *AccountService) Create(ctx context.Context, input ports.CreateAccountInput) (*domain.Account, error) {
	username := domain.NormalizeUsername(input.Username)
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	if err := checkPassword(input.Password); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueUsername(ctx, username, 0); err != nil {
		return nil, err
	}
	role, err := s.findRole(ctx, input.RoleID)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.accounts.Insert(ctx, &domain.Account{
		Username:     username,
		PasswordHash: hash,
		RoleID:       role.ID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, storeErr(s.log, "insert account", err)
	}
	created.RoleName = role.Name

	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("account created")
	return created, nil
}

// Update edits username, role, and active flag, and replaces the password
// only when a new one is supplied.
func (s *AccountService) Update(ctx context.Context, input ports.UpdateAccountInput) (*domain.Account, error) {
	username := domain.NormalizeUsername(input.Username)
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	if input.Password != "" {
		if err := checkPassword(input.Password); err != nil {
			return nil, err
		}
	}

	account, err := s.accounts.FindByID(ctx, input.ID)
	if err != nil {
		return nil, storeErr(s.log, "find account by id", err)
	}
	if err := s.ensureUniqueUsername(ctx, username, account.ID); err != nil {
		return nil, err
	}
	role, err := s.findRole(ctx, input.RoleID)
	if err != nil {
		return nil, err
	}

	if input.Password != "" {
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = hash
	}
	account.Username = username
	account.RoleID = role.ID
	account.Active = input.Active
	account.UpdatedAt = time.Now().UTC()

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, storeErr(s.log, "update account", err)
	}
	account.RoleName = role.Name

	s.log.Info().Int64("user_id", account.ID).Bool("password_changed", input.Password != "").Msg("account updated")
	return account, nil
}

// Deactivate soft-deletes an account; it keeps its row and can be re-enabled
// through Update.
func (s *AccountService) Deactivate(ctx context.Context, id int64) error {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return storeErr(s.log, "find account by id", err)
	}

	account.Active = false
	account.UpdatedAt = time.Now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		return storeErr(s.log, "deactivate account", err)
	}

	s.log.Info().Int64("user_id", id).Msg("account deactivated")
	return nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(s.log, "find account by id", err)
	}
	name, err := s.names.Name(ctx, account.RoleID)
	if err != nil {
		return nil, err
	}
	account.RoleName = name
	return account, nil
}

// List returns all accounts ordered by username with role names filled in.
func (s *AccountService) List(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, storeErr(s.log, "list accounts", err)
	}
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, storeErr(s.log, "list roles", err)
	}

	names := make(map[int64]string, len(roles))
	for _, r := range roles {
		names[r.ID] = r.Name
	}
	for _, a := range accounts {
		a.RoleName = names[a.RoleID]
	}
	return accounts, nil
}

// Bootstrap creates the first administrator when the store holds no accounts,
// creating roleName if needed. It reports whether an account was created.
func (s *AccountService) Bootstrap(ctx context.Context, roleName, username, password string) (bool, error) {
	count, err := s.accounts.Count(ctx)
	if err != nil {
		return false, storeErr(s.log, "count accounts", err)
	}
	if count > 0 {
		return false, nil
	}

	roleName = domain.NormalizeRoleName(roleName)
	if roleName == "" {
		return false, domain.ErrRoleNameRequired
	}
	role, err := s.roles.FindByName(ctx, roleName)
	if errors.Is(err, domain.ErrRoleNotFound) {
		now := time.Now().UTC()
		role, err = s.roles.Insert(ctx, &domain.Role{Name: roleName, CreatedAt: now, UpdatedAt: now})
	}
	if err != nil {
		return false, storeErr(s.log, "bootstrap role", err)
	}

	account, err := s.Create(ctx, ports.CreateAccountInput{
		Username: username,
		Password: password,
		RoleID:   role.ID,
	})
	if err != nil {
		return false, err
	}

	s.log.Warn().Str("username", account.Username).Str("role", role.Name).Msg("bootstrap administrator created")
	return true, nil
}

func (s *AccountService) ensureUniqueUsername(ctx context.Context, username string, excludeID int64) error {
	exists, err := s.accounts.ExistsByUsername(ctx, username, excludeID)
	if err != nil {
		return storeErr(s.log, "check username", err)
	}
	if exists {
		return domain.ErrDuplicateUsername
	}
	return nil
}

func (s *AccountService) findRole(ctx context.Context, roleID int64) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, storeErr(s.log, "find role by id", err)
	}
	return role, nil
}
