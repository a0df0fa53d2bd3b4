package ports

import (
	"context"

	"github.com/bookstore/catalog-system/internal/core/domain"
)

// CreateAccountInput carries an administrator's new-account request.
type CreateAccountInput struct {
	Username string
	Password string
	RoleID   int64
}

// UpdateAccountInput edits an existing account. An empty Password keeps the
// stored digest.
type UpdateAccountInput struct {
	ID       int64
	Username string
	Password string
	RoleID   int64
	Active   bool
}

type AccountService interface {
	Create(ctx context.Context, input CreateAccountInput) (*domain.Account, error)
	Update(ctx context.Context, input UpdateAccountInput) (*domain.Account, error)
	Deactivate(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
}

type RoleService interface {
	Create(ctx context.Context, name string) (*domain.Role, error)
	Update(ctx context.Context, id int64, name string) (*domain.Role, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
}
