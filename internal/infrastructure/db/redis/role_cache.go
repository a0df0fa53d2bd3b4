package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RoleCache caches role names by id.
// Key format: role:name:<role_id>
type RoleCache struct {
	client *redis.Client
}

// NewRoleCache creates a RoleCache wrapping the given Redis client.
func NewRoleCache(client *redis.Client) *RoleCache {
	return &RoleCache{client: client}
}

// Get reports the cached name for roleID, if any.
func (c *RoleCache) Get(ctx context.Context, roleID int64) (string, bool, error) {
	name, err := c.client.Get(ctx, c.key(roleID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("role cache get: %w", err)
	}
	return name, true, nil
}

// Set stores name for roleID until ttl elapses.
func (c *RoleCache) Set(ctx context.Context, roleID int64, name string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(roleID), name, ttl).Err(); err != nil {
		return fmt.Errorf("role cache set: %w", err)
	}
	return nil
}

// Invalidate removes the cached name for roleID.
func (c *RoleCache) Invalidate(ctx context.Context, roleID int64) error {
	if err := c.client.Del(ctx, c.key(roleID)).Err(); err != nil {
		return fmt.Errorf("role cache invalidate: %w", err)
	}
	return nil
}

func (c *RoleCache) key(roleID int64) string {
	return fmt.Sprintf("role:name:%d", roleID)
}
