package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookstore/catalog-system/internal/core/domain"
)

const accountColumns = "id, username, password_hash, role_id, active, created_at, updated_at"

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.RoleID, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return &a, nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	a, err := scanAccount(r.pool.QueryRow(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE lower(username) = lower($1)",
		username,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	a, err := scanAccount(r.pool.QueryRow(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = $1",
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, "SELECT "+accountColumns+" FROM accounts ORDER BY lower(username)")
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []*domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return out, nil
}

func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM accounts").Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	a, err := scanAccount(r.pool.QueryRow(ctx,
		"INSERT INTO accounts (username, password_hash, role_id, active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING "+accountColumns,
		account.Username, account.PasswordHash, account.RoleID, account.Active, account.CreatedAt, account.UpdatedAt,
	))
	if err != nil {
		switch pgCode(err) {
		case codeUniqueViolation:
			return nil, domain.ErrDuplicateUsername
		case codeForeignKeyViolation:
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		"UPDATE accounts SET username = $2, password_hash = $3, role_id = $4, active = $5, updated_at = $6 WHERE id = $1",
		account.ID, account.Username, account.PasswordHash, account.RoleID, account.Active, account.UpdatedAt,
	)
	if err != nil {
		switch pgCode(err) {
		case codeUniqueViolation:
			return domain.ErrDuplicateUsername
		case codeForeignKeyViolation:
			return domain.ErrRoleNotFound
		}
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM accounts WHERE lower(username) = lower($1) AND id <> $2)",
		username, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) CountByRole(ctx context.Context, roleID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM accounts WHERE role_id = $1", roleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts by role: %w", err)
	}
	return n, nil
}
