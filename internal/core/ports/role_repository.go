package ports

import (
	"context"
	"time"

	"github.com/bookstore/catalog-system/internal/core/domain"
)

// RoleRepository persists roles. Name checks ignore case.
type RoleRepository interface {
	// FindByID returns domain.ErrRoleNotFound when no role matches.
	FindByID(ctx context.Context, id int64) (*domain.Role, error)
	FindNameByID(ctx context.Context, id int64) (string, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	// List returns every role ordered by name.
	List(ctx context.Context) ([]*domain.Role, error)
	Insert(ctx context.Context, role *domain.Role) (*domain.Role, error)
	Update(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id int64) error
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
}

// RoleNameCache is an optional read-through cache in front of
// RoleRepository.FindNameByID.
type RoleNameCache interface {
	Get(ctx context.Context, roleID int64) (name string, ok bool, err error)
	Set(ctx context.Context, roleID int64, name string, ttl time.Duration) error
	Invalidate(ctx context.Context, roleID int64) error
}
