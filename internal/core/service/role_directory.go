package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-system/internal/core/ports"
)

const defaultRoleNameTTL = 5 * time.Minute

// RoleDirectory resolves role names for accounts and sessions. When a cache
// is configured it is consulted first; cache failures only degrade to a store
// read.
type RoleDirectory struct {
	roles ports.RoleRepository
	cache ports.RoleNameCache
	ttl   time.Duration
	log   zerolog.Logger
}

// NewRoleDirectory builds a directory over roles. cache may be nil.
func NewRoleDirectory(roles ports.RoleRepository, cache ports.RoleNameCache, ttl time.Duration, log zerolog.Logger) *RoleDirectory {
	if ttl <= 0 {
		ttl = defaultRoleNameTTL
	}
	return &RoleDirectory{roles: roles, cache: cache, ttl: ttl, log: log}
}

// Name returns the name of the role with the given id.
func (d *RoleDirectory) Name(ctx context.Context, roleID int64) (string, error) {
	if d.cache != nil {
		name, ok, err := d.cache.Get(ctx, roleID)
		if err != nil {
			d.log.Warn().Err(err).Int64("role_id", roleID).Msg("role cache read failed, falling back to store")
		} else if ok {
			return name, nil
		}
	}

	name, err := d.roles.FindNameByID(ctx, roleID)
	if err != nil {
		return "", storeErr(d.log, "find role name", err)
	}

	if d.cache != nil {
		if err := d.cache.Set(ctx, roleID, name, d.ttl); err != nil {
			d.log.Warn().Err(err).Int64("role_id", roleID).Msg("role cache write failed")
		}
	}
	return name, nil
}

// Forget drops a cached name after the role was renamed or deleted.
func (d *RoleDirectory) Forget(ctx context.Context, roleID int64) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Invalidate(ctx, roleID); err != nil {
		d.log.Warn().Err(err).Int64("role_id", roleID).Msg("role cache invalidation failed")
	}
}
