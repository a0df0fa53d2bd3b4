package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookstore/catalog-system/internal/core/domain"
	"github.com/bookstore/catalog-system/internal/core/ports"
	"github.com/bookstore/catalog-system/internal/infrastructure/db/memory"
)

var errBackend = errors.New("dial tcp 10.0.0.5:5432: connection refused")

type fixture struct {
	store    *memory.Store
	hasher   *BcryptHasher
	names    *RoleDirectory
	auth     *AuthService
	accounts *AccountService
	roles    *RoleService
	admin    *domain.Role
	user     *domain.Role
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zerolog.Nop()
	store := memory.New()
	f := &fixture{store: store, hasher: NewBcryptHasher(bcrypt.MinCost)}
	f.names = NewRoleDirectory(store.Roles(), nil, 0, log)
	f.auth = NewAuthService(store.Accounts(), f.names, f.hasher, log)
	f.accounts = NewAccountService(store.Accounts(), store.Roles(), f.names, f.hasher, log)
	f.roles = NewRoleService(store.Roles(), store.Accounts(), f.names, log)

	var err error
	if f.admin, err = f.roles.Create(context.Background(), domain.RoleNameAdmin); err != nil {
		t.Fatalf("create admin role: %v", err)
	}
	if f.user, err = f.roles.Create(context.Background(), domain.RoleNameUser); err != nil {
		t.Fatalf("create user role: %v", err)
	}
	return f
}

func (f *fixture) addAccount(t *testing.T, username, password string, role *domain.Role) *domain.Account {
	t.Helper()
	a, err := f.accounts.Create(context.Background(), ports.CreateAccountInput{
		Username: username,
		Password: password,
		RoleID:   role.ID,
	})
	if err != nil {
		t.Fatalf("create account %q: %v", username, err)
	}
	return a
}

func (f *fixture) storedHash(t *testing.T, id int64) string {
	t.Helper()
	a, err := f.store.Accounts().FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find account %d: %v", id, err)
	}
	return a.PasswordHash
}

// brokenAccounts fails every call; embedded methods not overridden panic.
type brokenAccounts struct {
	ports.AccountRepository
}

func (brokenAccounts) FindByUsername(context.Context, string) (*domain.Account, error) {
	return nil, errBackend
}

func (brokenAccounts) FindByID(context.Context, int64) (*domain.Account, error) {
	return nil, errBackend
}

func (brokenAccounts) List(context.Context) ([]*domain.Account, error) {
	return nil, errBackend
}

func (brokenAccounts) Count(context.Context) (int64, error) {
	return 0, errBackend
}

func (brokenAccounts) ExistsByUsername(context.Context, string, int64) (bool, error) {
	return false, errBackend
}

func (brokenAccounts) CountByRole(context.Context, int64) (int64, error) {
	return 0, errBackend
}

// stubRoleCache records cache traffic for RoleDirectory tests.
type stubRoleCache struct {
	entries     map[int64]string
	getErr      error
	gets        int
	invalidated []int64
}

func newStubRoleCache() *stubRoleCache {
	return &stubRoleCache{entries: map[int64]string{}}
}

func (c *stubRoleCache) Get(_ context.Context, id int64) (string, bool, error) {
	c.gets++
	if c.getErr != nil {
		return "", false, c.getErr
	}
	name, ok := c.entries[id]
	return name, ok, nil
}

func (c *stubRoleCache) Set(_ context.Context, id int64, name string, _ time.Duration) error {
	c.entries[id] = name
	return nil
}

func (c *stubRoleCache) Invalidate(_ context.Context, id int64) error {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}
