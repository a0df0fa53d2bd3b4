package ports

import (
	"context"

	"github.com/bookstore/catalog-system/internal/core/domain"
)

// AccountRepository is the credential store. Username lookups and existence
// checks ignore case; callers pass usernames already trimmed.
type AccountRepository interface {
	// FindByUsername returns domain.ErrAccountNotFound when no account matches.
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	// List returns every account ordered by username.
	List(ctx context.Context) ([]*domain.Account, error)
	Count(ctx context.Context) (int64, error)
	// Insert assigns the new account's ID.
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	// ExistsByUsername ignores the account with excludeID; pass 0 to check all.
	ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error)
	CountByRole(ctx context.Context, roleID int64) (int64, error)
}
