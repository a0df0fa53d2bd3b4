// Package memory implements the credential and role stores in process memory,
// for development and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/bookstore/catalog-system/internal/core/domain"
	"github.com/bookstore/catalog-system/internal/core/ports"
)

// Store holds accounts and roles behind a single lock so role deletion can
// check account references atomically, as a foreign key would.
type Store struct {
	mu       sync.Mutex
	accounts map[int64]domain.Account
	roles    map[int64]domain.Role

	accountSeq int64
	roleSeq    int64
}

// New creates an empty store.
func New() *Store {
	return &Store{
		accounts: make(map[int64]domain.Account),
		roles:    make(map[int64]domain.Role),
	}
}

// Accounts returns the store's AccountRepository view.
func (s *Store) Accounts() *AccountRepository { return &AccountRepository{s: s} }

// Roles returns the store's RoleRepository view.
func (s *Store) Roles() *RoleRepository { return &RoleRepository{s: s} }

var _ ports.AccountRepository = (*AccountRepository)(nil)
var _ ports.RoleRepository = (*RoleRepository)(nil)

// --- AccountRepository ---

type AccountRepository struct {
	s *Store
}

func (r *AccountRepository) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := domain.UsernameKey(username)
	for _, a := range r.s.accounts {
		if domain.UsernameKey(a.Username) == key {
			return &a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *AccountRepository) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}

func (r *AccountRepository) List(_ context.Context) ([]*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Account, 0, len(r.s.accounts))
	for _, a := range r.s.accounts {
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Username) < strings.ToLower(out[j].Username)
	})
	return out, nil
}

func (r *AccountRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.accounts)), nil
}

func (r *AccountRepository) Insert(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.usernameTaken(account.Username, 0) {
		return nil, domain.ErrDuplicateUsername
	}
	r.s.accountSeq++
	stored := *account
	stored.ID = r.s.accountSeq
	stored.RoleName = ""
	r.s.accounts[stored.ID] = stored
	return &stored, nil
}

func (r *AccountRepository) Update(_ context.Context, account *domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	if r.s.usernameTaken(account.Username, account.ID) {
		return domain.ErrDuplicateUsername
	}
	stored := *account
	stored.RoleName = ""
	r.s.accounts[stored.ID] = stored
	return nil
}

func (r *AccountRepository) ExistsByUsername(_ context.Context, username string, excludeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.usernameTaken(username, excludeID), nil
}

func (r *AccountRepository) CountByRole(_ context.Context, roleID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.countByRole(roleID), nil
}

// --- RoleRepository ---

type RoleRepository struct {
	s *Store
}

func (r *RoleRepository) FindByID(_ context.Context, id int64) (*domain.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	role, ok := r.s.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return &role, nil
}

func (r *RoleRepository) FindNameByID(ctx context.Context, id int64) (string, error) {
	role, err := r.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return role.Name, nil
}

func (r *RoleRepository) FindByName(_ context.Context, name string) (*domain.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := domain.RoleNameKey(name)
	for _, role := range r.s.roles {
		if domain.RoleNameKey(role.Name) == key {
			return &role, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *RoleRepository) List(_ context.Context) ([]*domain.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Role, 0, len(r.s.roles))
	for _, role := range r.s.roles {
		out = append(out, &role)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *RoleRepository) Insert(_ context.Context, role *domain.Role) (*domain.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.roleNameTaken(role.Name, 0) {
		return nil, domain.ErrDuplicateRoleName
	}
	r.s.roleSeq++
	stored := *role
	stored.ID = r.s.roleSeq
	r.s.roles[stored.ID] = stored
	return &stored, nil
}

func (r *RoleRepository) Update(_ context.Context, role *domain.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.roles[role.ID]; !ok {
		return domain.ErrRoleNotFound
	}
	if r.s.roleNameTaken(role.Name, role.ID) {
		return domain.ErrDuplicateRoleName
	}
	r.s.roles[role.ID] = *role
	return nil
}

func (r *RoleRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.roles[id]; !ok {
		return domain.ErrRoleNotFound
	}
	if r.s.countByRole(id) > 0 {
		return domain.ErrRoleInUse
	}
	delete(r.s.roles, id)
	return nil
}

func (r *RoleRepository) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.roleNameTaken(name, excludeID), nil
}

// --- helpers, called with mu held ---

func (s *Store) usernameTaken(username string, excludeID int64) bool {
	key := domain.UsernameKey(username)
	for id, a := range s.accounts {
		if id != excludeID && domain.UsernameKey(a.Username) == key {
			return true
		}
	}
	return false
}

func (s *Store) roleNameTaken(name string, excludeID int64) bool {
	key := domain.RoleNameKey(name)
	for id, role := range s.roles {
		if id != excludeID && domain.RoleNameKey(role.Name) == key {
			return true
		}
	}
	return false
}

func (s *Store) countByRole(roleID int64) int64 {
	var n int64
	for _, a := range s.accounts {
		if a.RoleID == roleID {
			n++
		}
	}
	return n
}
