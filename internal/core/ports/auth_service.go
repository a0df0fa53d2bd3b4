package ports

import (
	"context"

	"github.com/bookstore/catalog-system/internal/core/domain"
)

// PasswordHasher turns plaintext passwords into stored digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(digest, plaintext string) bool
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Identity, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
}
