package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookstore/catalog-system/internal/core/domain"
)

const roleColumns = "id, name, created_at, updated_at"

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

func scanRole(row pgx.Row) (*domain.Role, error) {
	var role domain.Role
	if err := row.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return nil, err
	}
	role.CreatedAt = role.CreatedAt.UTC()
	role.UpdatedAt = role.UpdatedAt.UTC()
	return &role, nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	role, err := scanRole(r.pool.QueryRow(ctx, "SELECT "+roleColumns+" FROM roles WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRoleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find role: %w", err)
	}
	return role, nil
}

func (r *RoleRepository) FindNameByID(ctx context.Context, id int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var name string
	err := r.pool.QueryRow(ctx, "SELECT name FROM roles WHERE id = $1", id).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrRoleNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find role name: %w", err)
	}
	return name, nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	role, err := scanRole(r.pool.QueryRow(ctx, "SELECT "+roleColumns+" FROM roles WHERE lower(name) = lower($1)", name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRoleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find role: %w", err)
	}
	return role, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, "SELECT "+roleColumns+" FROM roles ORDER BY lower(name)")
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var out []*domain.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return out, nil
}

func (r *RoleRepository) Insert(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created, err := scanRole(r.pool.QueryRow(ctx,
		"INSERT INTO roles (name, created_at, updated_at) VALUES ($1, $2, $3) RETURNING "+roleColumns,
		role.Name, role.CreatedAt, role.UpdatedAt,
	))
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return nil, domain.ErrDuplicateRoleName
		}
		return nil, fmt.Errorf("insert role: %w", err)
	}
	return created, nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		"UPDATE roles SET name = $2, updated_at = $3 WHERE id = $1",
		role.ID, role.Name, role.UpdatedAt,
	)
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return domain.ErrDuplicateRoleName
		}
		return fmt.Errorf("update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

// Delete relies on the accounts foreign key to refuse roles still in use.
func (r *RoleRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, "DELETE FROM roles WHERE id = $1", id)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return domain.ErrRoleInUse
		}
		return fmt.Errorf("delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

func (r *RoleRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM roles WHERE lower(name) = lower($1) AND id <> $2)",
		name, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check role name: %w", err)
	}
	return exists, nil
}
