package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-system/internal/core/domain"
	"github.com/bookstore/catalog-system/internal/core/ports"
)

// RoleService implements role administration. Roles are hard-deleted, but
// only once no account references them.
type RoleService struct {
	roles    ports.RoleRepository
	accounts ports.AccountRepository
	names    *RoleDirectory
	log      zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, accounts ports.AccountRepository, names *RoleDirectory, log zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, accounts: accounts, names: names, log: log}
}

func (s *RoleService) Create(ctx context.Context, name string) (*domain.Role, error) {
	name = domain.NormalizeRoleName(name)
	if name == "" {
		return nil, domain.ErrRoleNameRequired
	}
	if err := s.ensureUniqueName(ctx, name, 0); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	role, err := s.roles.Insert(ctx, &domain.Role{Name: name, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		return nil, storeErr(s.log, "insert role", err)
	}

	s.log.Info().Int64("role_id", role.ID).Str("name", role.Name).Msg("role created")
	return role, nil
}

func (s *RoleService) Update(ctx context.Context, id int64, name string) (*domain.Role, error) {
	name = domain.NormalizeRoleName(name)
	if name == "" {
		return nil, domain.ErrRoleNameRequired
	}

	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(s.log, "find role by id", err)
	}
	if err := s.ensureUniqueName(ctx, name, id); err != nil {
		return nil, err
	}

	role.Name = name
	role.UpdatedAt = time.Now().UTC()
	if err := s.roles.Update(ctx, role); err != nil {
		return nil, storeErr(s.log, "update role", err)
	}
	s.names.Forget(ctx, id)

	s.log.Info().Int64("role_id", id).Str("name", name).Msg("role updated")
	return role, nil
}

// Delete removes a role that no account is assigned to.
func (s *RoleService) Delete(ctx context.Context, id int64) error {
	if _, err := s.roles.FindByID(ctx, id); err != nil {
		return storeErr(s.log, "find role by id", err)
	}

	inUse, err := s.accounts.CountByRole(ctx, id)
	if err != nil {
		return storeErr(s.log, "count accounts by role", err)
	}
	if inUse > 0 {
		return domain.ErrRoleInUse
	}

	if err := s.roles.Delete(ctx, id); err != nil {
		return storeErr(s.log, "delete role", err)
	}
	s.names.Forget(ctx, id)

	s.log.Info().Int64("role_id", id).Msg("role deleted")
	return nil
}

func (s *RoleService) Get(ctx context.Context, id int64) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(s.log, "find role by id", err)
	}
	return role, nil
}

func (s *RoleService) List(ctx context.Context) ([]*domain.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, storeErr(s.log, "list roles", err)
	}
	return roles, nil
}

func (s *RoleService) ensureUniqueName(ctx context.Context, name string, excludeID int64) error {
	exists, err := s.roles.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return storeErr(s.log, "check role name", err)
	}
	if exists {
		return domain.ErrDuplicateRoleName
	}
	return nil
}
