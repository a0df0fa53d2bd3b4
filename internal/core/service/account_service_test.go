package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-system/internal/core/domain"
	"github.com/bookstore/catalog-system/internal/core/ports"
)

func TestAccountService_Create_TrimsAndStoresHash(t *testing.T) {
	f := newFixture(t)
	a := f.addAccount(t, "  alice ", "Secr3t!", f.user)

	if a.Username != "alice" {
		t.Fatalf("expected trimmed username, got %q", a.Username)
	}
	if a.RoleName != domain.RoleNameUser || !a.Active {
		t.Fatalf("unexpected account: %+v", a)
	}
	hash := f.storedHash(t, a.ID)
	if hash == "Secr3t!" || !f.hasher.Verify(hash, "Secr3t!") {
		t.Fatal("password must be stored as a verifiable digest")
	}
}

func TestAccountService_Create_DuplicateIgnoresCaseAndSpace(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "Alice ", "Secr3t!", f.user)

	_, err := f.accounts.Create(context.Background(), ports.CreateAccountInput{Username: "alice", Password: "Other1!", RoleID: f.user.ID})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAccountService_Create_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input ports.CreateAccountInput
		want  error
	}{
		{"blank username", ports.CreateAccountInput{Username: "  ", Password: "Secr3t!", RoleID: f.user.ID}, domain.ErrUsernameRequired},
		{"missing password", ports.CreateAccountInput{Username: "dave", RoleID: f.user.ID}, domain.ErrPasswordRequired},
		{"short password", ports.CreateAccountInput{Username: "dave", Password: "12345", RoleID: f.user.ID}, domain.ErrPasswordTooShort},
		{"unknown role", ports.CreateAccountInput{Username: "dave", Password: "Secr3t!", RoleID: 999}, domain.ErrRoleNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.accounts.Create(ctx, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAccountService_Update_BlankPasswordKeepsHash(t *testing.T) {
	f := newFixture(t)
	a := f.addAccount(t, "bob", "Secr3t!", f.user)
	before := f.storedHash(t, a.ID)

	updated, err := f.accounts.Update(context.Background(), ports.UpdateAccountInput{
		ID:       a.ID,
		Username: "bobby",
		RoleID:   f.admin.ID,
		Active:   true,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Username != "bobby" || updated.RoleName != domain.RoleNameAdmin {
		t.Fatalf("unexpected account: %+v", updated)
	}
	if f.storedHash(t, a.ID) != before {
		t.Fatal("blank password must keep the stored hash")
	}
}

func TestAccountService_Update_NewPassword(t *testing.T) {
	f := newFixture(t)
	a := f.addAccount(t, "bob", "Secr3t!", f.user)

	if _, err := f.accounts.Update(context.Background(), ports.UpdateAccountInput{
		ID: a.ID, Username: "bob", Password: "Changed1", RoleID: f.user.ID, Active: true,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !f.hasher.Verify(f.storedHash(t, a.ID), "Changed1") {
		t.Fatal("expected new password to be stored")
	}

	_, err := f.accounts.Update(context.Background(), ports.UpdateAccountInput{
		ID: a.ID, Username: "bob", Password: "abc", RoleID: f.user.ID, Active: true,
	})
	if !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestAccountService_Update_UniquenessExcludesSelf(t *testing.T) {
	f := newFixture(t)
	alice := f.addAccount(t, "alice", "Secr3t!", f.user)
	f.addAccount(t, "bob", "Secr3t!", f.user)
	ctx := context.Background()

	if _, err := f.accounts.Update(ctx, ports.UpdateAccountInput{ID: alice.ID, Username: "ALICE", RoleID: f.user.ID, Active: true}); err != nil {
		t.Fatalf("renaming to own name in other case must succeed: %v", err)
	}
	_, err := f.accounts.Update(ctx, ports.UpdateAccountInput{ID: alice.ID, Username: "Bob", RoleID: f.user.ID, Active: true})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAccountService_Update_Unknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.accounts.Update(context.Background(), ports.UpdateAccountInput{ID: 42, Username: "ghost", RoleID: f.user.ID})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountService_Deactivate(t *testing.T) {
	f := newFixture(t)
	a := f.addAccount(t, "bob", "Secr3t!", f.user)
	ctx := context.Background()

	if err := f.accounts.Deactivate(ctx, a.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	got, err := f.accounts.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Active {
		t.Fatal("account must be inactive")
	}
	if got.RoleName != domain.RoleNameUser {
		t.Fatalf("expected role name, got %q", got.RoleName)
	}

	if err := f.accounts.Deactivate(ctx, 999); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountService_List(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "carol", "Secr3t!", f.user)
	f.addAccount(t, "alice", "Secr3t!", f.admin)
	f.addAccount(t, "Bob", "Secr3t!", f.user)

	list, err := f.accounts.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"alice", "Bob", "carol"}
	if len(list) != len(want) {
		t.Fatalf("expected %d accounts, got %d", len(want), len(list))
	}
	for i, a := range list {
		if a.Username != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], a.Username)
		}
		if a.RoleName == "" {
			t.Fatalf("%s: role name not filled in", a.Username)
		}
	}
}

func TestAccountService_List_StoreFailure(t *testing.T) {
	f := newFixture(t)
	svc := NewAccountService(brokenAccounts{}, f.store.Roles(), f.names, f.hasher, zerolog.Nop())

	if _, err := svc.List(context.Background()); !errors.Is(err, domain.ErrStoreFailure) {
		t.Fatalf("expected ErrStoreFailure, got %v", err)
	}
}

func TestAccountService_Bootstrap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.accounts.Bootstrap(ctx, "admin", "root", "Adm1nPass")
	if err != nil || !created {
		t.Fatalf("first bootstrap: created=%v err=%v", created, err)
	}

	id, err := f.auth.Login(ctx, "root", "Adm1nPass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if id.RoleName != domain.RoleNameAdmin {
		t.Fatalf("bootstrap must reuse the existing role, got %q", id.RoleName)
	}

	created, err = f.accounts.Bootstrap(ctx, "Admin", "other", "Adm1nPass")
	if err != nil || created {
		t.Fatalf("second bootstrap must be a no-op: created=%v err=%v", created, err)
	}
}

func TestAccountService_Bootstrap_CreatesRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.accounts.Bootstrap(ctx, "Superuser", "root", "Adm1nPass"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	role, err := f.store.Roles().FindByName(ctx, "superuser")
	if err != nil {
		t.Fatalf("role not created: %v", err)
	}
	if role.Name != "Superuser" {
		t.Fatalf("unexpected role: %+v", role)
	}
}
